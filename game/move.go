package game

import "fmt"

// Move is the intent to push the piece at Origin toward Destination. Both
// cells are snapshots taken when the move was formed; the referee checks them
// against its live board so a stale move is never applied.
type Move struct {
	Origin      Cell
	Destination Cell
}

func NewMove(origin, destination Cell) Move {
	return Move{Origin: origin, Destination: destination}
}

// String returns the move text, e.g. "00-04".
func (m Move) String() string {
	return fmt.Sprintf("%s-%s", m.Origin.coordinate, m.Destination.coordinate)
}

const (
	moveTextLength   = 5
	moveSeparatorPos = 2
	destinationStart = 3
)

// ParseCoordinates validates move text of the form "RC-RC" where every R and
// C is a digit in '0'..'6'. Any deviation returns ErrInvalidFormat.
func ParseCoordinates(text string) (from, to Coordinate, err error) {
	if len(text) != moveTextLength || text[moveSeparatorPos] != '-' {
		return Coordinate{}, Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	from, ok := parseCoordinate(text[:moveSeparatorPos])
	if !ok {
		return Coordinate{}, Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	to, ok = parseCoordinate(text[destinationStart:])
	if !ok {
		return Coordinate{}, Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	return from, to, nil
}

func parseCoordinate(text string) (Coordinate, bool) {
	if !isBoardDigit(text[0]) || !isBoardDigit(text[1]) {
		return Coordinate{}, false
	}
	return Coordinate{row: int(text[0] - '0'), col: int(text[1] - '0')}, true
}

func isBoardDigit(ch byte) bool {
	return ch >= '0' && ch < '0'+Size
}

// MoveFromText parses text and snapshots the origin and destination cells
// of b into a Move.
func (b *Board) MoveFromText(text string) (Move, error) {
	from, to, err := ParseCoordinates(text)
	if err != nil {
		return Move{}, err
	}
	return NewMove(b.Cell(from), b.Cell(to)), nil
}
