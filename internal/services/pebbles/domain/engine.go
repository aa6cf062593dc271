package domain

import (
	"log"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/louisbranch/pebbles/internal/platform/errors"
	"github.com/louisbranch/pebbles/internal/platform/id"
	"github.com/louisbranch/pebbles/internal/random"
)

// Observer is notified once per session when a winner is decided.
type Observer interface {
	SessionFinished(Session)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Session)

// SessionFinished implements Observer.
func (fn ObserverFunc) SessionFinished(s Session) {
	fn(s)
}

// Engine owns a single game session and serializes every operation on it.
type Engine struct {
	mu         sync.Mutex
	session    *Session
	random     random.Source
	firstActor Actor
	clock      func() time.Time
	newID      func() (string, error)
	observer   Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithFirstActor forces who moves first instead of drawing it.
// ActorUnspecified restores the random draw.
func WithFirstActor(actor Actor) Option {
	return func(e *Engine) {
		e.firstActor = actor
	}
}

// WithClock overrides the time source used for session timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithIDFunc overrides session id generation.
func WithIDFunc(fn func() (string, error)) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithObserver registers the observer for finished sessions.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// NewEngine creates an engine with no session. A nil source uses crypto/rand.
func NewEngine(source random.Source, opts ...Option) *Engine {
	if source == nil {
		source = random.NewCryptoSource()
	}
	e := &Engine{
		random: source,
		clock:  time.Now,
		newID:  id.NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize starts the first session. It fails with SessionExists when a
// session is already present; use Restart to replace it.
func (e *Engine) Initialize(cfg Config) (Opening, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return Opening{}, apperrors.New(apperrors.CodeSessionExists, "session already initialized")
	}
	opening, err := e.open(cfg)
	if err != nil {
		return Opening{}, err
	}
	e.commit(opening.Session)
	return opening, nil
}

// Restart replaces any existing session with a fresh one.
func (e *Engine) Restart(cfg Config) (Opening, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	opening, err := e.open(cfg)
	if err != nil {
		return Opening{}, err
	}
	if e.session != nil && !e.session.Finished() {
		log.Printf("session %s abandoned with %d pebbles remaining", e.session.ID, e.session.Remaining)
	}
	e.commit(opening.Session)
	return opening, nil
}

// ApplyTurn removes count pebbles for the human and, if the game goes on,
// plays the automated reply. Invalid counts are rejected without error.
func (e *Engine) ApplyTurn(count uint32) (TurnOutcome, error) {
	outcome, finished, err := e.applyTurn(count)
	e.notify(finished)
	return outcome, err
}

func (e *Engine) applyTurn(count uint32) (TurnOutcome, *Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return TurnOutcome{}, nil, uninitialized()
	}
	current := *e.session
	if reason := validateTurn(current, count); reason != RejectNone {
		log.Printf("session %s rejected turn of %d: %s", current.ID, count, reason)
		return TurnOutcome{
			Status:     TurnRejected,
			Reason:     reason,
			HumanCount: count,
			Remaining:  current.Remaining,
			Session:    current,
		}, nil, nil
	}

	next := current
	next.Remaining -= count
	log.Printf("session %s human removed %d, %d remaining", next.ID, count, next.Remaining)
	if next.Remaining == 0 {
		e.finish(&next, ActorHuman)
		return TurnOutcome{
			Status:     TurnHumanWins,
			HumanCount: count,
			Remaining:  next.Remaining,
			Session:    next,
		}, &next, nil
	}

	automated, err := e.automatedMove(next)
	if err != nil {
		return TurnOutcome{}, nil, err
	}
	next.Remaining -= automated
	log.Printf("session %s automated removed %d, %d remaining", next.ID, automated, next.Remaining)

	outcome := TurnOutcome{
		Status:         TurnContinues,
		HumanCount:     count,
		AutomatedCount: automated,
		Remaining:      next.Remaining,
	}
	if next.Remaining == 0 {
		outcome.Status = TurnAutomatedWins
		e.finish(&next, ActorAutomated)
		outcome.Session = next
		return outcome, &next, nil
	}
	e.commit(next)
	outcome.Session = next
	return outcome, nil, nil
}

// ApplyGiveUp concedes the session to the automated actor. A session that is
// already finished keeps its winner.
func (e *Engine) ApplyGiveUp() (Session, error) {
	session, finished, err := e.applyGiveUp()
	e.notify(finished)
	return session, err
}

func (e *Engine) applyGiveUp() (Session, *Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Session{}, nil, uninitialized()
	}
	if e.session.Finished() {
		return *e.session, nil, nil
	}
	next := *e.session
	log.Printf("session %s conceded with %d pebbles remaining", next.ID, next.Remaining)
	e.finish(&next, ActorAutomated)
	return next, &next, nil
}

// Snapshot returns a copy of the current session.
func (e *Engine) Snapshot() (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Session{}, uninitialized()
	}
	return *e.session, nil
}

// open builds a new session and plays the automated opening move if needed.
// Nothing is committed, so a failed draw leaves the engine untouched.
func (e *Engine) open(cfg Config) (Opening, error) {
	if err := ValidateConfig(cfg); err != nil {
		return Opening{}, err
	}
	first, err := e.chooseFirstActor()
	if err != nil {
		return Opening{}, err
	}
	sessionID, err := e.newID()
	if err != nil {
		return Opening{}, apperrors.Wrap(apperrors.CodeRandomUnavailable, "generate session id", err)
	}

	session := Session{
		ID:           sessionID,
		TotalPebbles: cfg.TotalPebbles,
		MaxPerTurn:   cfg.MaxPerTurn,
		Remaining:    cfg.TotalPebbles,
		Difficulty:   cfg.Difficulty,
		FirstActor:   first,
		StartedAt:    e.clock().UTC(),
	}
	log.Printf("session %s started: %d pebbles, max %d per turn, %s, %s first",
		session.ID, session.TotalPebbles, session.MaxPerTurn, session.Difficulty, first)

	opening := Opening{Session: session}
	if first == ActorAutomated {
		automated, err := e.automatedMove(session)
		if err != nil {
			return Opening{}, err
		}
		opening.Session.Remaining -= automated
		opening.AutomatedCount = automated
		log.Printf("session %s automated opened with %d, %d remaining", session.ID, automated, opening.Session.Remaining)
	}
	return opening, nil
}

func (e *Engine) chooseFirstActor() (Actor, error) {
	if e.firstActor == ActorHuman || e.firstActor == ActorAutomated {
		return e.firstActor, nil
	}
	draw, err := e.random.Uint32()
	if err != nil {
		return ActorUnspecified, apperrors.Wrap(apperrors.CodeRandomUnavailable, "draw first actor", err)
	}
	if draw%2 == 0 {
		return ActorHuman, nil
	}
	return ActorAutomated, nil
}

func (e *Engine) finish(s *Session, winner Actor) {
	s.Winner = winner
	s.FinishedAt = e.clock().UTC()
	log.Printf("session %s finished, winner %s", s.ID, winner)
	e.commit(*s)
}

func (e *Engine) commit(s Session) {
	e.session = &s
}

func (e *Engine) notify(finished *Session) {
	if finished == nil || e.observer == nil {
		return
	}
	e.observer.SessionFinished(*finished)
}

// ValidateConfig checks that a session can be started with cfg.
func ValidateConfig(cfg Config) error {
	var message string
	switch {
	case !cfg.Difficulty.Valid():
		message = "difficulty is required"
	case cfg.MaxPerTurn == 0:
		message = "max pebbles per turn must be at least 1"
	case cfg.TotalPebbles <= cfg.MaxPerTurn:
		message = "pebbles count must be greater than max pebbles per turn"
	default:
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeInvalidConfiguration, message, map[string]string{
		"PebblesCount":      strconv.FormatUint(uint64(cfg.TotalPebbles), 10),
		"MaxPebblesPerTurn": strconv.FormatUint(uint64(cfg.MaxPerTurn), 10),
		"Difficulty":        cfg.Difficulty.String(),
	})
}

func validateTurn(s Session, count uint32) RejectReason {
	switch {
	case s.Finished():
		return RejectGameOver
	case count == 0:
		return RejectZero
	case count > s.MaxPerTurn:
		return RejectAboveMax
	case count > s.Remaining:
		return RejectAboveRemaining
	default:
		return RejectNone
	}
}

func uninitialized() error {
	return apperrors.New(apperrors.CodeUninitializedState, "game is not initialized")
}
