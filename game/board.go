package game

import (
	"fmt"
	"strings"
)

// Board is the 7x7 grid. Every coordinate always maps to a cell.
type Board struct {
	cells [Size][Size]Cell
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			b.cells[row][col] = Cell{coordinate: Coordinate{row: row, col: col}}
		}
	}
	return b
}

// Cell returns a snapshot of the cell at c. Out of range coordinates yield
// an empty cell carrying that coordinate.
func (b *Board) Cell(c Coordinate) Cell {
	if !c.InBounds() {
		return Cell{coordinate: c}
	}
	return b.cells[c.row][c.col]
}

// Place puts p on the empty cell at c.
func (b *Board) Place(p Piece, c Coordinate) error {
	if !c.InBounds() {
		return fmt.Errorf("cannot place %s: %w: (%d, %d)", p, ErrInvalidCoordinate, c.row, c.col)
	}
	cell := &b.cells[c.row][c.col]
	if cell.occupied {
		return fmt.Errorf("cannot place %s at %s: %w", p, c, ErrCellOccupied)
	}
	cell.piece = p
	cell.occupied = true
	return nil
}

func (b *Board) remove(c Coordinate) Piece {
	cell := &b.cells[c.row][c.col]
	p := cell.piece
	cell.piece = Piece{}
	cell.occupied = false
	return p
}

// Count returns how many pieces of the given color and kind are on the board.
func (b *Board) Count(color Color, kind Kind) int {
	n := 0
	for row := range b.cells {
		for _, cell := range b.cells[row] {
			if cell.occupied && cell.piece.Color == color && cell.piece.Kind == kind {
				n++
			}
		}
	}
	return n
}

func (b *Board) PiecesInRow(row int) int {
	if row < 0 || row >= Size {
		return 0
	}
	n := 0
	for _, cell := range b.cells[row] {
		if cell.occupied {
			n++
		}
	}
	return n
}

func (b *Board) PiecesInColumn(col int) int {
	if col < 0 || col >= Size {
		return 0
	}
	n := 0
	for row := range b.cells {
		if b.cells[row][col].occupied {
			n++
		}
	}
	return n
}

// Copy returns an independent board. Cells are values so the array copy is deep.
func (b *Board) Copy() *Board {
	return &Board{cells: b.cells}
}

func (b *Board) Equal(other *Board) bool {
	return other != nil && b.cells == other.cells
}

// Render returns the board as text, one line per row:
//
//	0 RB PB PB PB -- -- --
//
// The row number comes first, followed by each cell's piece code or "--".
func (b *Board) Render() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d", row)
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			sb.WriteString(b.cells[row][col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Render()
}

// PlaceInitialLayout places the starting pieces of both players: each queen
// in its corner with three pawns along the row and three along the column.
func (b *Board) PlaceInitialLayout() error {
	for _, placement := range initialLayout {
		if err := b.Place(placement.piece, mustCoordinate(placement.row, placement.col)); err != nil {
			return fmt.Errorf("initial layout: %w", err)
		}
	}
	return nil
}

type placement struct {
	piece    Piece
	row, col int
}

var initialLayout = []placement{
	{Piece{White, Queen}, 0, 0},
	{Piece{White, Pawn}, 0, 1},
	{Piece{White, Pawn}, 0, 2},
	{Piece{White, Pawn}, 0, 3},
	{Piece{White, Pawn}, 1, 0},
	{Piece{White, Pawn}, 2, 0},
	{Piece{White, Pawn}, 3, 0},
	{Piece{Black, Queen}, 6, 6},
	{Piece{Black, Pawn}, 6, 5},
	{Piece{Black, Pawn}, 6, 4},
	{Piece{Black, Pawn}, 6, 3},
	{Piece{Black, Pawn}, 5, 6},
	{Piece{Black, Pawn}, 4, 6},
	{Piece{Black, Pawn}, 3, 6},
}
