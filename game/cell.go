package game

// Cell is a board position and its occupant, if any. Cells are values:
// two cells are equal iff they have the same coordinate and occupant.
type Cell struct {
	coordinate Coordinate
	piece      Piece
	occupied   bool
}

func (c Cell) Coordinate() Coordinate { return c.coordinate }

// Piece returns the occupant and whether there is one.
func (c Cell) Piece() (Piece, bool) {
	return c.piece, c.occupied
}

func (c Cell) IsEmpty() bool { return !c.occupied }

func (c Cell) String() string {
	if !c.occupied {
		return "--"
	}
	return c.piece.String()
}
