package history

import (
	"fmt"

	"github.com/pkg/errors"

	"noventagrados/game"
)

// ReplayHistory stores the initial referee and the ordered move log. The
// referee of any step is rebuilt by replaying the log from step 0, so replay
// doubles as a check that the rules are deterministic.
type ReplayHistory struct {
	initial *game.Referee
	moves   []game.Move
}

func NewReplay() *ReplayHistory {
	return &ReplayHistory{}
}

func (h *ReplayHistory) Strategy() Strategy { return Replay }

func (h *ReplayHistory) RecordInitial(r *game.Referee) error {
	if h.initial != nil {
		return ErrAlreadySeeded
	}
	h.initial = r.Copy()
	return nil
}

func (h *ReplayHistory) RecordMove(m game.Move) error {
	if h.initial == nil {
		return ErrNotSeeded
	}
	// Only moves that play cleanly from the current step enter the log.
	if err := advance(h.Current(), m); err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	h.moves = append(h.moves, m)
	return nil
}

func (h *ReplayHistory) Undo() bool {
	if len(h.moves) == 0 {
		return false
	}
	h.moves = h.moves[:len(h.moves)-1]
	return true
}

func (h *ReplayHistory) UndoableCount() int {
	return len(h.moves)
}

// Current replays the whole log on a copy of the initial referee. A logged
// move that no longer applies means the rules are not deterministic, which
// is a programming error.
func (h *ReplayHistory) Current() *game.Referee {
	if h.initial == nil {
		return nil
	}
	r, err := h.replay(len(h.moves))
	if err != nil {
		panic(err)
	}
	return r
}

func (h *ReplayHistory) replay(n int) (*game.Referee, error) {
	r := h.initial.Copy()
	for i, m := range h.moves[:n] {
		if err := advance(r, m); err != nil {
			return nil, errors.Wrapf(err, "replay diverged at step %d (%s)", i+1, m)
		}
	}
	return r, nil
}

func (h *ReplayHistory) Steps() []Step {
	if h.initial == nil {
		return nil
	}
	steps := make([]Step, 0, len(h.moves)+1)
	steps = append(steps, initialStep())
	for _, m := range h.moves {
		steps = append(steps, playedStep(m))
	}
	return steps
}
