package session

import (
	"fmt"

	"noventagrados/game"
)

// Outcome classifies what a submitted input did to the session.
type Outcome int

const (
	MoveApplied Outcome = iota
	IllegalMove
	InvalidFormat
	NothingToUndo
	MoveUndone
	GameEnded
	GameOver
	GameAlreadyOver
)

func (o Outcome) String() string {
	switch o {
	case MoveApplied:
		return "Move applied"
	case IllegalMove:
		return "Illegal move"
	case InvalidFormat:
		return "Invalid format"
	case NothingToUndo:
		return "No moves to undo"
	case MoveUndone:
		return "Last move undone"
	case GameEnded:
		return "Game ended by user"
	case GameOver:
		return "Game over"
	case GameAlreadyOver:
		return "Game already over"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the answer to one Submit call. Move and Captured are set for
// MoveApplied and GameOver; Winner is meaningful only for GameOver without Draw.
type Result struct {
	Outcome  Outcome
	Move     game.Move
	Captured []game.Piece
	Winner   game.Color
	Draw     bool
}

// Status is the one-line answer the web front end sends back. A move that
// ends the game still starts with "Move applied" so clients redraw the board.
func (r Result) Status() string {
	if r.Outcome != GameOver {
		return r.Outcome.String()
	}
	if r.Draw {
		return fmt.Sprintf("%s. Game over: draw", MoveApplied)
	}
	return fmt.Sprintf("%s. Game over: %s wins", MoveApplied, r.Winner)
}
