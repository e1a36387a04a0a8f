package game

import "errors"

var (
	// ErrInvalidCoordinate indicates a row or column outside [0, Size).
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidFormat indicates move text that does not match "RC-RC".
	ErrInvalidFormat = errors.New("invalid move format")
	// ErrIllegalMove indicates a well formed move rejected by the rules.
	ErrIllegalMove = errors.New("illegal move")
	// ErrCellOccupied indicates a placement on a cell that already holds a piece.
	ErrCellOccupied = errors.New("cell is occupied")
)
