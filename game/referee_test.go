package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newInitialReferee(t *testing.T) *Referee {
	t.Helper()
	r := NewReferee(NewBoard())
	require.NoError(t, r.PlaceInitialLayout())
	return r
}

// refereeWith builds a referee with only the given pieces on the board.
func refereeWith(t *testing.T, turn Color, pieces map[string]Piece) *Referee {
	t.Helper()
	b := NewBoard()
	for at, p := range pieces {
		require.NoError(t, b.Place(p, mustCoordinate(int(at[0]-'0'), int(at[1]-'0'))))
	}
	r := NewReferee(b)
	if turn != r.Turn() {
		r.ChangeTurn()
	}
	return r
}

func move(t *testing.T, r *Referee, text string) Move {
	t.Helper()
	m, err := r.Board().MoveFromText(text)
	require.NoError(t, err)
	return m
}

func TestRefereeIsLegal(t *testing.T) {
	t.Run("empty origin is illegal", func(t *testing.T) {
		r := NewReferee(NewBoard())
		require.False(t, r.IsLegal(move(t, r, "00-04")))
	})

	t.Run("origin of the wrong color is illegal", func(t *testing.T) {
		r := newInitialReferee(t)
		require.False(t, r.IsLegal(move(t, r, "66-62")), "Black cannot move on White's turn")

		r.ChangeTurn()
		require.True(t, r.IsLegal(move(t, r, "66-62")))
	})

	t.Run("distance must equal the pieces in the line", func(t *testing.T) {
		r := newInitialReferee(t)
		require.True(t, r.IsLegal(move(t, r, "00-04")), "Row 0 holds four pieces")
		require.False(t, r.IsLegal(move(t, r, "00-03")))
		require.False(t, r.IsLegal(move(t, r, "00-05")))
		require.True(t, r.IsLegal(move(t, r, "00-40")), "Column 0 holds four pieces")
		require.True(t, r.IsLegal(move(t, r, "03-23")), "Column 3 holds two pieces")
	})

	t.Run("non orthogonal and null moves are illegal", func(t *testing.T) {
		r := newInitialReferee(t)
		require.False(t, r.IsLegal(move(t, r, "10-21")))
		require.False(t, r.IsLegal(move(t, r, "00-00")))
	})

	t.Run("out of range coordinates fail closed", func(t *testing.T) {
		r := newInitialReferee(t)
		m := NewMove(r.Board().Cell(mustCoordinate(0, 0)), Cell{coordinate: Coordinate{row: 0, col: 9}})
		require.False(t, r.IsLegal(m))
	})

	t.Run("stale moves are illegal", func(t *testing.T) {
		r := newInitialReferee(t)
		stale := move(t, r, "00-04")
		require.NoError(t, r.Apply(stale))
		r.ChangeTurn()
		r.ChangeTurn()
		require.False(t, r.IsLegal(stale), "Snapshot no longer matches the board")
	})

	t.Run("checking legality is pure", func(t *testing.T) {
		r := newInitialReferee(t)
		before := r.Board().Render()
		hash := r.Hash()
		for _, text := range []string{"00-04", "00-03", "66-62", "10-21"} {
			m := move(t, r, text)
			first := r.IsLegal(m)
			second := r.IsLegal(m)
			require.Equal(t, first, second, "%s should give the same answer twice", text)
		}
		require.Equal(t, before, r.Board().Render())
		require.Equal(t, hash, r.Hash())
		require.Equal(t, White, r.Turn())
	})
}

func TestRefereeApply(t *testing.T) {
	t.Run("pushing a row off the edge", func(t *testing.T) {
		r := newInitialReferee(t)
		require.NoError(t, r.Apply(move(t, r, "00-04")))

		require.Equal(t, "0 -- -- -- -- RB PB PB\n", r.Board().Render()[:23])
		require.Equal(t, []Piece{{White, Pawn}}, r.Captured())
		require.Equal(t, 5, r.Board().Count(White, Pawn))
		require.Equal(t, White, r.Turn(), "Apply should not change the turn")
		require.False(t, r.IsGameOver())
	})

	t.Run("moving into empty cells captures nothing", func(t *testing.T) {
		r := newInitialReferee(t)
		require.NoError(t, r.Apply(move(t, r, "03-23")))

		p, ok := r.Board().Cell(mustCoordinate(2, 3)).Piece()
		require.True(t, ok)
		require.Equal(t, Piece{White, Pawn}, p)
		require.True(t, r.Board().Cell(mustCoordinate(0, 3)).IsEmpty())
		require.Empty(t, r.Captured())
	})

	t.Run("pushing a run that is not yet touching", func(t *testing.T) {
		r := refereeWith(t, White, map[string]Piece{
			"30": {White, Pawn},
			"31": {Black, Pawn},
			"35": {White, Queen},
			"36": {Black, Queen},
		})
		require.NoError(t, r.Apply(move(t, r, "30-34")))

		require.Equal(t, "3 -- -- -- -- PB PN RB\n", r.Board().Render()[69:92])
		require.Equal(t, []Piece{{Black, Queen}}, r.Captured())
		winner, ok := r.Winner()
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("illegal moves are rejected without changes", func(t *testing.T) {
		r := newInitialReferee(t)
		before := r.Board().Render()
		err := r.Apply(move(t, r, "00-03"))
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, before, r.Board().Render())
	})

	t.Run("no moves after the game is over", func(t *testing.T) {
		r := refereeWith(t, White, map[string]Piece{
			"32": {White, Pawn},
			"31": {Black, Queen},
			"66": {White, Queen},
		})
		require.NoError(t, r.Apply(move(t, r, "32-30")))
		require.True(t, r.IsGameOver())
		require.Empty(t, r.LegalMoves())
		require.False(t, r.IsLegal(move(t, r, "30-32")))
	})
}

func TestRefereeGameOver(t *testing.T) {
	t.Run("running game has no winner", func(t *testing.T) {
		r := newInitialReferee(t)
		require.False(t, r.IsGameOver())
		_, ok := r.Winner()
		require.False(t, ok)
	})

	t.Run("sole remaining queen wins", func(t *testing.T) {
		r := refereeWith(t, White, map[string]Piece{
			"32": {White, Pawn},
			"31": {Black, Queen},
			"66": {White, Queen},
		})
		require.NoError(t, r.Apply(move(t, r, "32-30")))

		require.True(t, r.IsGameOver())
		require.False(t, r.IsDraw())
		winner, ok := r.Winner()
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("own queen pushed off loses", func(t *testing.T) {
		r := refereeWith(t, Black, map[string]Piece{
			"32": {Black, Pawn},
			"31": {Black, Queen},
			"66": {White, Queen},
		})
		require.NoError(t, r.Apply(move(t, r, "32-30")))

		winner, ok := r.Winner()
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("both queens pushed off in one move is a draw", func(t *testing.T) {
		r := refereeWith(t, White, map[string]Piece{
			"31": {White, Queen},
			"32": {Black, Queen},
			"33": {White, Pawn},
		})
		require.NoError(t, r.Apply(move(t, r, "33-30")))

		require.True(t, r.IsGameOver())
		require.True(t, r.IsDraw())
		_, ok := r.Winner()
		require.False(t, ok, "A draw has no winner")
		require.ElementsMatch(t, []Piece{{White, Queen}, {Black, Queen}}, r.Captured())
	})
}

func TestRefereeLegalMoves(t *testing.T) {
	r := newInitialReferee(t)
	moves := r.LegalMoves()

	got := make([]string, len(moves))
	for i, m := range moves {
		require.True(t, r.IsLegal(m))
		got[i] = m.String()
	}
	require.ElementsMatch(t, []string{
		"00-04", "00-40",
		"01-05", "01-11",
		"02-06", "02-12",
		"03-23",
		"10-50", "10-11",
		"20-60", "20-21",
		"30-32",
	}, got)
}

func TestRefereeCopy(t *testing.T) {
	r := newInitialReferee(t)
	cp := r.Copy()
	require.Equal(t, r.Hash(), cp.Hash())

	require.NoError(t, cp.Apply(move(t, cp, "00-04")))
	cp.ChangeTurn()

	require.NotEqual(t, r.Hash(), cp.Hash())
	require.Equal(t, initialRender, r.Board().Render(), "Original should not change")
	require.Equal(t, White, r.Turn())
	require.Empty(t, r.Captured())
}
