// Package session ties a referee to its undo history and turns raw player
// input into game actions. Front ends hold one Session per game.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"noventagrados/game"
	"noventagrados/history"
	"noventagrados/metrics"
)

var (
	exitTokens = []string{"exit", "salir"}
	undoTokens = []string{"undo", "deshacer"}
)

// NewGame lays out a fresh referee and a history seeded with it.
func NewGame(s history.Strategy) (*game.Referee, history.Mechanism, error) {
	r := game.NewReferee(game.NewBoard())
	if err := r.PlaceInitialLayout(); err != nil {
		return nil, nil, errors.Wrap(err, "initial layout")
	}
	return resumeGame(s, r)
}

// resumeGame seeds a history of the given strategy with r as step 0.
func resumeGame(s history.Strategy, r *game.Referee) (*game.Referee, history.Mechanism, error) {
	h, err := history.New(s)
	if err != nil {
		return nil, nil, err
	}
	if err := h.RecordInitial(r); err != nil {
		return nil, nil, errors.Wrap(err, "seed history")
	}
	return r, h, nil
}

// Session is one game in progress. It is not safe for concurrent use.
type Session struct {
	id        string
	referee   *game.Referee
	history   history.Mechanism
	collector metrics.Collector
	logger    zerolog.Logger
	start     *game.Referee
	ended     bool
}

type Option func(*Session)

func WithCollector(c metrics.Collector) Option {
	return func(s *Session) {
		s.collector = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithStartingPosition starts the game from a copy of r instead of the
// initial layout.
func WithStartingPosition(r *game.Referee) Option {
	return func(s *Session) {
		s.start = r.Copy()
	}
}

// New starts a game backed by the given undo strategy.
func New(strategy history.Strategy, opts ...Option) (*Session, error) {
	s := &Session{
		id:        uuid.NewString(),
		collector: metrics.NewCollector(),
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.start == nil {
		s.referee, s.history, err = NewGame(strategy)
	} else {
		s.referee, s.history, err = resumeGame(strategy, s.start)
	}
	if err != nil {
		return nil, err
	}
	s.logger = s.logger.With().Str("session", s.id).Stringer("strategy", strategy).Logger()
	s.collector.Start()
	s.logger.Info().Msg("game started")
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Strategy() history.Strategy { return s.history.Strategy() }

// Referee returns a copy of the live referee.
func (s *Session) Referee() *game.Referee { return s.referee.Copy() }

func (s *Session) Render() string { return s.referee.Board().Render() }

func (s *Session) Turn() game.Color { return s.referee.Turn() }

func (s *Session) LegalMoves() []game.Move { return s.referee.LegalMoves() }

func (s *Session) UndoableCount() int { return s.history.UndoableCount() }

func (s *Session) Steps() []history.Step { return s.history.Steps() }

func (s *Session) Metrics() metrics.GameMetric { return s.collector.Complete() }

// Ended reports whether the player asked to leave.
func (s *Session) Ended() bool { return s.ended }

// IsOver reports whether a queen has left the board.
func (s *Session) IsOver() bool { return s.referee.IsGameOver() }

// Submit handles one line of player input: an exit or undo keyword, or a
// move in RC-RC form. Rejected input is reported through the Outcome; the
// error is reserved for internal faults.
func (s *Session) Submit(input string) (Result, error) {
	token := strings.TrimSpace(input)
	switch {
	case s.ended:
		return Result{Outcome: GameEnded}, nil
	case matches(token, exitTokens):
		s.ended = true
		m := s.collector.Complete()
		s.logger.Info().Int("moves", m.Moves).Int("undos", m.Undos).Msg("game ended by user")
		return Result{Outcome: GameEnded}, nil
	case matches(token, undoTokens):
		return s.undo()
	}

	m, err := s.referee.Board().MoveFromText(token)
	if errors.Is(err, game.ErrInvalidFormat) {
		s.collector.AddInvalidFormat()
		return Result{Outcome: InvalidFormat}, nil
	}
	if err != nil {
		return Result{}, errors.WithStack(err)
	}
	if s.referee.IsGameOver() {
		return Result{Outcome: GameAlreadyOver}, nil
	}
	if !s.referee.IsLegal(m) {
		s.collector.AddIllegal()
		s.logger.Debug().Stringer("move", m).Msg("illegal move")
		return Result{Outcome: IllegalMove}, nil
	}
	return s.play(m)
}

func (s *Session) play(m game.Move) (Result, error) {
	if err := s.history.RecordMove(m); err != nil {
		return Result{}, errors.Wrapf(err, "record legal move %s", m)
	}
	before := len(s.referee.Captured())
	if err := s.referee.Apply(m); err != nil {
		return Result{}, errors.Wrapf(err, "apply legal move %s", m)
	}
	captured := s.referee.Captured()[before:]
	s.collector.AddMove(len(captured))
	s.logger.Debug().Stringer("move", m).Int("captured", len(captured)).Msg("move applied")

	res := Result{Outcome: MoveApplied, Move: m, Captured: captured}
	if s.referee.IsGameOver() {
		res.Outcome = GameOver
		res.Winner, _ = s.referee.Winner()
		res.Draw = s.referee.IsDraw()
		if res.Draw {
			s.logger.Info().Msg("game over: draw")
		} else {
			s.logger.Info().Msgf("game over: %s wins", res.Winner)
		}
		return res, nil
	}
	s.referee.ChangeTurn()
	return res, nil
}

func (s *Session) undo() (Result, error) {
	if !s.history.Undo() {
		return Result{Outcome: NothingToUndo}, nil
	}
	current := s.history.Current()
	if current == nil {
		return Result{}, errors.New("history lost its initial step")
	}
	s.referee = current
	s.collector.AddUndo()
	s.logger.Debug().Int("remaining", s.history.UndoableCount()).Msg("move undone")
	return Result{Outcome: MoveUndone}, nil
}

func matches(token string, keywords []string) bool {
	for _, k := range keywords {
		if strings.EqualFold(token, k) {
			return true
		}
	}
	return false
}
