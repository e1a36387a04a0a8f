package game

import "fmt"

// Size is the number of rows and columns of the board.
const Size = 7

// Coordinate addresses a cell on the board by row and column.
type Coordinate struct {
	row int
	col int
}

// NewCoordinate returns the coordinate (row, col) or ErrInvalidCoordinate if
// either component falls outside the board.
func NewCoordinate(row, col int) (Coordinate, error) {
	c := Coordinate{row: row, col: col}
	if !c.InBounds() {
		return Coordinate{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, row, col)
	}
	return c, nil
}

func mustCoordinate(row, col int) Coordinate {
	c, err := NewCoordinate(row, col)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) Row() int { return c.row }
func (c Coordinate) Col() int { return c.col }

func (c Coordinate) InBounds() bool {
	return c.row >= 0 && c.row < Size && c.col >= 0 && c.col < Size
}

// String returns the two digit notation used in move text, e.g. "04".
func (c Coordinate) String() string {
	return fmt.Sprintf("%d%d", c.row, c.col)
}

func (c Coordinate) step(d direction) Coordinate {
	return Coordinate{row: c.row + d.dr, col: c.col + d.dc}
}
