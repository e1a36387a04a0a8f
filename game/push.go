package game

type direction struct {
	dr, dc int
}

// geometry returns the unit direction and distance from origin to
// destination. ok is false unless the two share a row or a column and differ.
func geometry(origin, destination Coordinate) (d direction, distance int, ok bool) {
	switch {
	case origin == destination:
		return direction{}, 0, false
	case origin.row == destination.row:
		distance = destination.col - origin.col
		d = direction{dc: sign(distance)}
	case origin.col == destination.col:
		distance = destination.row - origin.row
		d = direction{dr: sign(distance)}
	default:
		return direction{}, 0, false
	}
	if distance < 0 {
		distance = -distance
	}
	return d, distance, true
}

// isValidPush is the rule predicate: a piece moves orthogonally exactly as
// many cells as there are pieces (of both colors, itself included) in the
// row or column it moves along. It reads the board and nothing else.
func isValidPush(b *Board, origin, destination Coordinate) bool {
	d, distance, ok := geometry(origin, destination)
	if !ok {
		return false
	}
	var inLine int
	if d.dr == 0 {
		inLine = b.PiecesInRow(origin.row)
	} else {
		inLine = b.PiecesInColumn(origin.col)
	}
	return distance == inLine
}

// push advances the piece at origin one cell at a time toward destination,
// shifting the contiguous run ahead of it. Pieces shifted past the edge are
// removed and returned in the order they fell off.
func push(b *Board, origin, destination Coordinate) []Piece {
	d, distance, _ := geometry(origin, destination)
	var captured []Piece
	pos := origin
	for i := 0; i < distance; i++ {
		// Find the end of the run of occupied cells directly ahead.
		end := pos
		for next := end.step(d); next.InBounds() && b.cells[next.row][next.col].occupied; next = next.step(d) {
			end = next
		}
		if end != pos {
			if beyond := end.step(d); !beyond.InBounds() {
				captured = append(captured, b.remove(end))
				end = stepBack(end, d)
			}
			for c := end; c != pos; c = stepBack(c, d) {
				shift(b, c, c.step(d))
			}
		}
		shift(b, pos, pos.step(d))
		pos = pos.step(d)
	}
	return captured
}

func shift(b *Board, from, to Coordinate) {
	p := b.remove(from)
	cell := &b.cells[to.row][to.col]
	cell.piece = p
	cell.occupied = true
}

func stepBack(c Coordinate, d direction) Coordinate {
	return Coordinate{row: c.row - d.dr, col: c.col - d.dc}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
