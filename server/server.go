// Package server exposes game sessions over HTTP for the browser client.
//
// Every endpoint answers plain text except /game/stats. Requests without a
// session parameter use a default session that is replaced once its player
// exits.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"noventagrados/game"
	"noventagrados/history"
	"noventagrados/metrics"
	"noventagrados/session"
)

const (
	noMoveProvided  = "No move provided"
	unknownSession  = "Unknown session"
	unknownMode     = "Unknown undo mode"
	internalError   = "Internal error"
	shutdownTimeout = 5 * time.Second

	DefaultMaxSessions = 1000
	DefaultIdleTimeout = 30 * time.Minute
)

type Server struct {
	strategy    history.Strategy
	fallback    *session.Session
	sessions    map[string]*entry
	sessionOpts []session.Option
	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time
	mutex       sync.RWMutex
}

// entry is a named session and the time it was last addressed.
type entry struct {
	session  *session.Session
	lastSeen atomic.Int64
}

func (e *entry) touch(t time.Time) { e.lastSeen.Store(t.UnixNano()) }

func (e *entry) idleSince() time.Time { return time.Unix(0, e.lastSeen.Load()) }

type Option func(*Server)

// WithSessionOptions applies opts to every session the server creates.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// WithMaxSessions caps the named sessions. Creating one more evicts the
// least recently used.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		s.maxSessions = n
	}
}

// WithIdleTimeout sets how long a named session may go unused before it is
// evicted.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New returns a server whose sessions default to the given undo strategy.
func New(strategy history.Strategy, opts ...Option) (*Server, error) {
	s := &Server{
		strategy:    strategy,
		sessions:    map[string]*entry{},
		maxSessions: DefaultMaxSessions,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	fallback, err := s.newSession(strategy)
	if err != nil {
		return nil, err
	}
	s.fallback = fallback
	return s, nil
}

func (s *Server) newSession(strategy history.Strategy) (*session.Session, error) {
	return session.New(strategy, s.sessionOpts...)
}

// Handler returns the routes wrapped in panic recovery and request logging.
// Paths outside /game/ serve the browser client.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /game/board", s.handleBoard)
	mux.HandleFunc("GET /game/move", s.handleMove)
	mux.HandleFunc("POST /game/new", s.handleNew)
	mux.HandleFunc("GET /game/new", onlyPost)
	mux.HandleFunc("GET /game/stats", s.handleStats)
	mux.HandleFunc("GET /game/moves", s.handleMoves)
	mux.Handle("GET /", http.FileServer(StaticFS()))
	return requestLogger(recoverer(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Stringer("strategy", s.strategy).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// lookup returns the session named by the request, or the default one.
// Callers hold the mutex.
func (s *Server) lookup(r *http.Request) (*session.Session, bool) {
	id := r.URL.Query().Get("session")
	if id == "" {
		return s.fallback, true
	}
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.touch(s.now())
	return e.session, true
}

// evict drops idle sessions and, while the registry is full, the least
// recently used ones. Callers hold the write lock.
func (s *Server) evict() {
	now := s.now()
	for id, e := range s.sessions {
		if now.Sub(e.idleSince()) > s.idleTimeout {
			delete(s.sessions, id)
			log.Debug().Str("session", id).Msg("idle session evicted")
		}
	}
	for len(s.sessions) >= s.maxSessions && len(s.sessions) > 0 {
		var oldestID string
		var oldest time.Time
		for id, e := range s.sessions {
			if seen := e.idleSince(); oldestID == "" || seen.Before(oldest) {
				oldestID, oldest = id, seen
			}
		}
		delete(s.sessions, oldestID)
		log.Debug().Str("session", oldestID).Msg("session evicted, registry full")
	}
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	sess, ok := s.lookup(r)
	if !ok {
		writeText(w, http.StatusNotFound, unknownSession)
		return
	}
	writeText(w, http.StatusOK, sess.Render())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	token, ok := moveToken(r.URL.Query())
	if !ok {
		writeText(w, http.StatusOK, noMoveProvided)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	sess, ok := s.lookup(r)
	if !ok {
		writeText(w, http.StatusNotFound, unknownSession)
		return
	}
	res, err := sess.Submit(token)
	if err != nil {
		log.Error().Stack().Err(err).Str("session", sess.ID()).Msg("submit failed")
		writeText(w, http.StatusInternalServerError, internalError)
		return
	}
	if res.Outcome == session.GameEnded {
		if err := s.retire(sess); err != nil {
			log.Error().Stack().Err(err).Msg("replace default session")
			writeText(w, http.StatusInternalServerError, internalError)
			return
		}
	}
	writeText(w, http.StatusOK, res.Status())
}

// moveToken reads the move parameter, accepting "jugada" as an alias.
func moveToken(query url.Values) (string, bool) {
	for _, key := range []string{"move", "jugada"} {
		if query.Has(key) {
			return query.Get(key), true
		}
	}
	return "", false
}

// retire forgets a session whose player left. The default session is
// replaced by a fresh game.
func (s *Server) retire(sess *session.Session) error {
	if sess != s.fallback {
		delete(s.sessions, sess.ID())
		return nil
	}
	fresh, err := s.newSession(s.strategy)
	if err != nil {
		return pkgerrors.WithStack(err)
	}
	s.fallback = fresh
	return nil
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	strategy := s.strategy
	if mode := r.URL.Query().Get("mode"); mode != "" {
		parsed, err := history.ParseStrategy(mode)
		if err != nil {
			writeText(w, http.StatusBadRequest, unknownMode)
			return
		}
		strategy = parsed
	}

	sess, err := s.newSession(strategy)
	if err != nil {
		log.Error().Stack().Err(pkgerrors.WithStack(err)).Msg("new session")
		writeText(w, http.StatusInternalServerError, internalError)
		return
	}

	e := &entry{session: sess}
	e.touch(s.now())
	s.mutex.Lock()
	s.evict()
	s.sessions[sess.ID()] = e
	s.mutex.Unlock()
	writeText(w, http.StatusOK, sess.ID())
}

// onlyPost answers 405 where the browser client's catch-all route would
// otherwise serve a 404 page.
func onlyPost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeText(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

// Stats is the JSON body of /game/stats.
type Stats struct {
	Session  string             `json:"session"`
	Strategy string             `json:"strategy"`
	Turn     string             `json:"turn"`
	Over     bool               `json:"over"`
	Undoable int                `json:"undoable"`
	Metrics  metrics.GameMetric `json:"metrics"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	sess, ok := s.lookup(r)
	if !ok {
		writeText(w, http.StatusNotFound, unknownSession)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Stats{
		Session:  sess.ID(),
		Strategy: sess.Strategy().String(),
		Turn:     sess.Turn().String(),
		Over:     sess.IsOver(),
		Undoable: sess.UndoableCount(),
		Metrics:  sess.Metrics(),
	})
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	sess, ok := s.lookup(r)
	if !ok {
		writeText(w, http.StatusNotFound, unknownSession)
		return
	}
	writeText(w, http.StatusOK, formatMoves(sess.LegalMoves()))
}

func formatMoves(moves []game.Move) string {
	var sb strings.Builder
	for _, m := range moves {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
