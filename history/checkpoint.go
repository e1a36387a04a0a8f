package history

import (
	"fmt"

	"noventagrados/game"
)

type checkpoint struct {
	step    Step
	referee *game.Referee
}

// CheckpointHistory stores a full copy of the referee after every move.
// Undo is a slice truncation; nothing is ever recomputed.
type CheckpointHistory struct {
	checkpoints []checkpoint
}

func NewCheckpoint() *CheckpointHistory {
	return &CheckpointHistory{}
}

func (h *CheckpointHistory) Strategy() Strategy { return Checkpoint }

func (h *CheckpointHistory) RecordInitial(r *game.Referee) error {
	if len(h.checkpoints) > 0 {
		return ErrAlreadySeeded
	}
	h.checkpoints = append(h.checkpoints, checkpoint{step: initialStep(), referee: r.Copy()})
	return nil
}

func (h *CheckpointHistory) RecordMove(m game.Move) error {
	if len(h.checkpoints) == 0 {
		return ErrNotSeeded
	}
	next := h.last().referee.Copy()
	if err := advance(next, m); err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	h.checkpoints = append(h.checkpoints, checkpoint{step: playedStep(m), referee: next})
	return nil
}

func (h *CheckpointHistory) Undo() bool {
	if h.UndoableCount() == 0 {
		return false
	}
	h.checkpoints[len(h.checkpoints)-1] = checkpoint{}
	h.checkpoints = h.checkpoints[:len(h.checkpoints)-1]
	return true
}

func (h *CheckpointHistory) UndoableCount() int {
	if len(h.checkpoints) == 0 {
		return 0
	}
	return len(h.checkpoints) - 1
}

func (h *CheckpointHistory) Current() *game.Referee {
	if len(h.checkpoints) == 0 {
		return nil
	}
	return h.last().referee.Copy()
}

func (h *CheckpointHistory) Steps() []Step {
	steps := make([]Step, len(h.checkpoints))
	for i, c := range h.checkpoints {
		steps[i] = c.step
	}
	return steps
}

func (h *CheckpointHistory) last() checkpoint {
	return h.checkpoints[len(h.checkpoints)-1]
}
