package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Referee owns the board and the color to move. It is the unit of game state
// checkpointed or replayed by the undo history. A Referee is not safe for
// concurrent use.
type Referee struct {
	board    *Board
	turn     Color
	captured []Piece
}

// NewReferee returns a referee for b with White to move.
func NewReferee(b *Board) *Referee {
	return &Referee{board: b, turn: White}
}

// PlaceInitialLayout sets up the starting position on the referee's board.
func (r *Referee) PlaceInitialLayout() error {
	return r.board.PlaceInitialLayout()
}

// Board returns the live board for display. Callers must not mutate it;
// moves go through Apply.
func (r *Referee) Board() *Board { return r.board }

func (r *Referee) Turn() Color { return r.turn }

// Captured returns the pieces pushed off the board so far, oldest first.
func (r *Referee) Captured() []Piece {
	out := make([]Piece, len(r.captured))
	copy(out, r.captured)
	return out
}

// IsLegal reports whether m may be applied to the current state. It never
// mutates the referee.
func (r *Referee) IsLegal(m Move) bool {
	origin := m.Origin.coordinate
	destination := m.Destination.coordinate
	if !origin.InBounds() || !destination.InBounds() {
		return false
	}
	if r.IsGameOver() {
		return false
	}
	// Stale snapshots: the move was formed against a different position.
	if r.board.Cell(origin) != m.Origin || r.board.Cell(destination) != m.Destination {
		return false
	}
	piece, ok := m.Origin.Piece()
	if !ok || piece.Color != r.turn {
		return false
	}
	return isValidPush(r.board, origin, destination)
}

// Apply executes the push described by m, removing every piece driven off the
// board. The turn is left unchanged; call ChangeTurn once the move is complete.
func (r *Referee) Apply(m Move) error {
	if !r.IsLegal(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	captured := push(r.board, m.Origin.coordinate, m.Destination.coordinate)
	r.captured = append(r.captured, captured...)
	return nil
}

// ChangeTurn passes the turn to the other color.
func (r *Referee) ChangeTurn() {
	r.turn = r.turn.Opponent()
}

// IsGameOver is true once at least one queen has left the board.
func (r *Referee) IsGameOver() bool {
	return r.board.Count(White, Queen) == 0 || r.board.Count(Black, Queen) == 0
}

// Winner returns the color whose queen is still on the board. ok is false
// while the game is running and when both queens are gone (a draw).
func (r *Referee) Winner() (winner Color, ok bool) {
	white := r.board.Count(White, Queen) > 0
	black := r.board.Count(Black, Queen) > 0
	switch {
	case white && !black:
		return White, true
	case black && !white:
		return Black, true
	default:
		return White, false
	}
}

// IsDraw is true when both queens were pushed off the board.
func (r *Referee) IsDraw() bool {
	return r.IsGameOver() && r.board.Count(White, Queen) == 0 && r.board.Count(Black, Queen) == 0
}

// LegalMoves returns every legal move for the color to move, in board order.
func (r *Referee) LegalMoves() []Move {
	if r.IsGameOver() {
		return nil
	}
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			origin := r.board.cells[row][col]
			if p, ok := origin.Piece(); !ok || p.Color != r.turn {
				continue
			}
			for _, d := range directions {
				// The push distance is fixed by the line, so there is at most
				// one candidate per direction.
				var distance int
				if d.dr == 0 {
					distance = r.board.PiecesInRow(row)
				} else {
					distance = r.board.PiecesInColumn(col)
				}
				to := Coordinate{row: row + d.dr*distance, col: col + d.dc*distance}
				if !to.InBounds() {
					continue
				}
				m := NewMove(origin, r.board.Cell(to))
				if r.IsLegal(m) {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}

var directions = []direction{{dr: -1}, {dr: 1}, {dc: -1}, {dc: 1}}

// Copy returns a deep, independent copy of the referee.
func (r *Referee) Copy() *Referee {
	captured := make([]Piece, len(r.captured))
	copy(captured, r.captured)
	return &Referee{
		board:    r.board.Copy(),
		turn:     r.turn,
		captured: captured,
	}
}

// Hash fingerprints the board and the color to move.
func (r *Referee) Hash() uint64 {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(r.turn))

	for row := range r.board.cells {
		for _, cell := range r.board.cells[row] {
			code := int64(-1)
			if cell.occupied {
				code = int64(cell.piece.Color)<<1 | int64(cell.piece.Kind)
			}
			binary.Write(hasher, binary.LittleEndian, code)
		}
	}

	return hasher.Sum64()
}
