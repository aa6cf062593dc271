// Package domain implements the pebbles subtraction game: session lifecycle,
// turn resolution, and the automated opponent's move policies.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the automated actor's policy.
type Difficulty int

const (
	DifficultyUnspecified Difficulty = iota
	DifficultyEasy
	DifficultyHard
)

// String returns the wire name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "EASY"
	case DifficultyHard:
		return "HARD"
	default:
		return "UNSPECIFIED"
	}
}

// Valid reports whether d names a playable difficulty.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyHard
}

// ParseDifficulty accepts EASY or HARD in any case.
func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "EASY":
		return DifficultyEasy, nil
	case "HARD":
		return DifficultyHard, nil
	default:
		return DifficultyUnspecified, fmt.Errorf("unknown difficulty %q", value)
	}
}

// Actor identifies one of the two participants. ActorUnspecified doubles as
// "no winner yet".
type Actor int

const (
	ActorUnspecified Actor = iota
	ActorHuman
	ActorAutomated
)

// String returns the wire name of the actor.
func (a Actor) String() string {
	switch a {
	case ActorHuman:
		return "HUMAN"
	case ActorAutomated:
		return "AUTOMATED"
	default:
		return "UNSPECIFIED"
	}
}

// ParseActor accepts HUMAN or AUTOMATED in any case.
func ParseActor(value string) (Actor, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "HUMAN":
		return ActorHuman, nil
	case "AUTOMATED":
		return ActorAutomated, nil
	default:
		return ActorUnspecified, fmt.Errorf("unknown actor %q", value)
	}
}

// Config holds the parameters of a new session.
type Config struct {
	Difficulty   Difficulty
	TotalPebbles uint32
	MaxPerTurn   uint32
}

// Session is one game from initialize or restart until a winner is decided.
type Session struct {
	ID           string
	TotalPebbles uint32
	MaxPerTurn   uint32
	Remaining    uint32
	Difficulty   Difficulty
	FirstActor   Actor
	Winner       Actor
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Finished reports whether a winner has been decided.
func (s Session) Finished() bool {
	return s.Winner != ActorUnspecified
}

// Opening is the result of starting a session. AutomatedCount is the size of
// the automated actor's opening move, or 0 when the human moves first.
type Opening struct {
	Session        Session
	AutomatedCount uint32
}

// TurnStatus classifies the result of a human turn.
type TurnStatus int

const (
	TurnRejected TurnStatus = iota
	TurnContinues
	TurnHumanWins
	TurnAutomatedWins
)

func (s TurnStatus) String() string {
	switch s {
	case TurnContinues:
		return "CONTINUES"
	case TurnHumanWins:
		return "HUMAN_WINS"
	case TurnAutomatedWins:
		return "AUTOMATED_WINS"
	default:
		return "REJECTED"
	}
}

// RejectReason explains why a turn was rejected.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectZero
	RejectAboveMax
	RejectAboveRemaining
	RejectGameOver
)

func (r RejectReason) String() string {
	switch r {
	case RejectZero:
		return "ZERO"
	case RejectAboveMax:
		return "ABOVE_MAX"
	case RejectAboveRemaining:
		return "ABOVE_REMAINING"
	case RejectGameOver:
		return "GAME_OVER"
	default:
		return "NONE"
	}
}

// TurnOutcome reports what happened during a human turn and the automated
// reply, if any. Remaining is the pool size after the turn and Session is the
// state the turn left behind, captured under the same lock.
type TurnOutcome struct {
	Status         TurnStatus
	Reason         RejectReason
	HumanCount     uint32
	AutomatedCount uint32
	Remaining      uint32
	Session        Session
}

// Winner returns the actor a terminal outcome names, or ActorUnspecified.
func (o TurnOutcome) Winner() Actor {
	switch o.Status {
	case TurnHumanWins:
		return ActorHuman
	case TurnAutomatedWins:
		return ActorAutomated
	default:
		return ActorUnspecified
	}
}
