package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"noventagrados/history"
	"noventagrados/server"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := server.New(history.Checkpoint)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("playing the default session", func(t *testing.T) {
		c := New(newServer(t).URL + "/")

		board, err := c.Board(ctx)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(board, "0 RB PB PB PB -- -- --\n"))

		status, err := c.Move(ctx, "00-04")
		require.NoError(t, err)
		require.Equal(t, "Move applied", status)

		moves, err := c.LegalMoves(ctx)
		require.NoError(t, err)
		require.Contains(t, moves, "66-62", "Black is to move")

		status, err = c.Move(ctx, "undo")
		require.NoError(t, err)
		require.Equal(t, "Last move undone", status)
	})

	t.Run("named session", func(t *testing.T) {
		c := New(newServer(t).URL)
		s, err := c.NewSession(ctx, "replay")
		require.NoError(t, err)
		require.NotEmpty(t, s.Session())

		_, err = s.Move(ctx, "00-04")
		require.NoError(t, err)
		stats, err := s.Stats(ctx)
		require.NoError(t, err)
		require.Equal(t, s.Session(), stats.Session)
		require.Equal(t, "replay", stats.Strategy)
		require.Equal(t, 1, stats.Metrics.Moves)

		board, err := c.Board(ctx)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(board, "0 RB PB PB PB"), "The default session is untouched")
	})

	t.Run("error statuses", func(t *testing.T) {
		ts := newServer(t)
		_, err := New(ts.URL, WithSession("missing")).Board(ctx)
		var serr *StatusError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, http.StatusNotFound, serr.Code)
		require.Equal(t, "Unknown session", serr.Body)

		_, err = New(ts.URL, WithHTTPClient(ts.Client())).NewSession(ctx, "rewind")
		require.ErrorAs(t, err, &serr)
		require.Equal(t, http.StatusBadRequest, serr.Code)
	})
}
