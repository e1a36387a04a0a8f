package game

// Color identifies a player. White moves first.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

// Symbol is the one letter color code used in board text (B = blanco, N = negro).
func (c Color) Symbol() byte {
	if c == White {
		return 'B'
	}
	return 'N'
}

// Kind is the type of a piece.
type Kind int

const (
	Queen Kind = iota
	Pawn
)

func (k Kind) String() string {
	switch k {
	case Queen:
		return "Queen"
	case Pawn:
		return "Pawn"
	default:
		return "Unknown"
	}
}

// Symbol is the one letter kind code used in board text (R = reina, P = peón).
func (k Kind) Symbol() byte {
	if k == Queen {
		return 'R'
	}
	return 'P'
}

type Piece struct {
	Color Color
	Kind  Kind
}

// String returns the two letter board code, e.g. "RB" for the White queen.
func (p Piece) String() string {
	return string([]byte{p.Kind.Symbol(), p.Color.Symbol()})
}
