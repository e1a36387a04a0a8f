// Package history records the referee states of a game so moves can be undone.
//
// Two strategies implement the same Mechanism contract: Checkpoint keeps a
// deep copy of the referee for every step, Replay keeps only the move log and
// rebuilds the state from the initial layout on demand.
package history

import (
	"errors"
	"fmt"
	"strings"

	"noventagrados/game"
)

var (
	// ErrUnknownStrategy indicates an undo mode that is neither checkpoint nor replay.
	ErrUnknownStrategy = errors.New("unknown undo strategy")
	// ErrAlreadySeeded indicates RecordInitial was called twice.
	ErrAlreadySeeded = errors.New("history already has an initial step")
	// ErrNotSeeded indicates a move recorded before RecordInitial.
	ErrNotSeeded = errors.New("history has no initial step")
)

// Strategy selects how the history is backed. It is fixed for a session.
type Strategy int

const (
	Checkpoint Strategy = iota
	Replay
)

func (s Strategy) String() string {
	switch s {
	case Checkpoint:
		return "checkpoint"
	case Replay:
		return "replay"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps an undo mode name to a Strategy. Besides the canonical
// names it accepts "referees"/"arbitros" for Checkpoint and "moves"/"jugadas"
// for Replay.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "checkpoint", "referees", "arbitros":
		return Checkpoint, nil
	case "replay", "moves", "jugadas":
		return Replay, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Mechanism is the undo capability shared by both strategies.
type Mechanism interface {
	// RecordInitial seeds step 0 from a freshly laid out referee. It must be
	// called exactly once, before any move.
	RecordInitial(r *game.Referee) error
	// RecordMove appends the step reached by playing m from the current step.
	// The strategy plays the move on its own copy; an illegal move is
	// rejected with game.ErrIllegalMove and nothing is recorded.
	RecordMove(m game.Move) error
	// Undo drops the latest step. It reports false when only step 0 remains.
	Undo() bool
	// UndoableCount is the number of steps after step 0.
	UndoableCount() int
	// Current returns a copy of the referee at the latest step.
	Current() *game.Referee
	// Steps lists every step, step 0 first.
	Steps() []Step
	Strategy() Strategy
}

// New returns an empty history backed by the given strategy.
func New(s Strategy) (Mechanism, error) {
	switch s {
	case Checkpoint:
		return NewCheckpoint(), nil
	case Replay:
		return NewReplay(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}
}

// Step is one entry of the history. Step 0 has no move.
type Step struct {
	move   game.Move
	played bool
}

func initialStep() Step {
	return Step{}
}

func playedStep(m game.Move) Step {
	return Step{move: m, played: true}
}

// Move returns the move that produced this step and false for step 0.
func (s Step) Move() (game.Move, bool) {
	return s.move, s.played
}

// advance plays m on r the way a session does: apply the push, then pass the
// turn unless the push ended the game.
func advance(r *game.Referee, m game.Move) error {
	if err := r.Apply(m); err != nil {
		return err
	}
	if !r.IsGameOver() {
		r.ChangeTurn()
	}
	return nil
}
