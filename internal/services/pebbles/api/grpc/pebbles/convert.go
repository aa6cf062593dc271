package pebbles

import (
	"time"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/louisbranch/pebbles/internal/services/pebbles/domain"
	"github.com/louisbranch/pebbles/internal/services/pebbles/storage"
)

func configFromWire(difficulty pebblesv1.Difficulty, pebblesCount, maxPerTurn uint32) domain.Config {
	return domain.Config{
		Difficulty:   difficultyFromWire(difficulty),
		TotalPebbles: pebblesCount,
		MaxPerTurn:   maxPerTurn,
	}
}

func difficultyFromWire(value pebblesv1.Difficulty) domain.Difficulty {
	parsed, err := domain.ParseDifficulty(string(value))
	if err != nil {
		return domain.DifficultyUnspecified
	}
	return parsed
}

func difficultyToWire(value domain.Difficulty) pebblesv1.Difficulty {
	switch value {
	case domain.DifficultyEasy:
		return pebblesv1.DifficultyEasy
	case domain.DifficultyHard:
		return pebblesv1.DifficultyHard
	default:
		return pebblesv1.DifficultyUnspecified
	}
}

func actorToWire(value domain.Actor) pebblesv1.Player {
	switch value {
	case domain.ActorHuman:
		return pebblesv1.PlayerHuman
	case domain.ActorAutomated:
		return pebblesv1.PlayerAutomated
	default:
		return pebblesv1.PlayerUnspecified
	}
}

func reasonToWire(value domain.RejectReason) pebblesv1.RejectReason {
	switch value {
	case domain.RejectZero:
		return pebblesv1.RejectReasonZero
	case domain.RejectAboveMax:
		return pebblesv1.RejectReasonAboveMax
	case domain.RejectAboveRemaining:
		return pebblesv1.RejectReasonAboveRemaining
	case domain.RejectGameOver:
		return pebblesv1.RejectReasonGameOver
	default:
		return pebblesv1.RejectReasonUnspecified
	}
}

func stateToWire(s domain.Session) *pebblesv1.GameState {
	state := &pebblesv1.GameState{
		SessionID:         s.ID,
		PebblesCount:      s.TotalPebbles,
		MaxPebblesPerTurn: s.MaxPerTurn,
		PebblesRemaining:  s.Remaining,
		Difficulty:        difficultyToWire(s.Difficulty),
		FirstPlayer:       actorToWire(s.FirstActor),
		Winner:            actorToWire(s.Winner),
		StartedAt:         s.StartedAt,
	}
	if !s.FinishedAt.IsZero() {
		finished := s.FinishedAt
		state.FinishedAt = &finished
	}
	return state
}

func counterTurnEvent(count, remaining uint32) *pebblesv1.PebblesEvent {
	return &pebblesv1.PebblesEvent{
		Type:        pebblesv1.EventCounterTurn,
		CounterTurn: count,
		Remaining:   remaining,
	}
}

func turnEvent(outcome domain.TurnOutcome) *pebblesv1.PebblesEvent {
	switch outcome.Status {
	case domain.TurnRejected:
		return &pebblesv1.PebblesEvent{
			Type:      pebblesv1.EventRejected,
			Reason:    reasonToWire(outcome.Reason),
			Remaining: outcome.Remaining,
		}
	case domain.TurnHumanWins, domain.TurnAutomatedWins:
		return &pebblesv1.PebblesEvent{
			Type:        pebblesv1.EventWon,
			Winner:      actorToWire(outcome.Winner()),
			CounterTurn: outcome.AutomatedCount,
			Remaining:   outcome.Remaining,
		}
	default:
		return counterTurnEvent(outcome.AutomatedCount, outcome.Remaining)
	}
}

func matchToWire(match storage.MatchResult) *pebblesv1.MatchResult {
	return &pebblesv1.MatchResult{
		SessionID:         match.SessionID,
		Difficulty:        pebblesv1.Difficulty(match.Difficulty),
		PebblesCount:      match.TotalPebbles,
		MaxPebblesPerTurn: match.MaxPerTurn,
		FirstPlayer:       pebblesv1.Player(match.FirstActor),
		Winner:            pebblesv1.Player(match.Winner),
		StartedAt:         match.StartedAt,
		FinishedAt:        match.FinishedAt,
	}
}

// MatchFromSession converts a finished session into a history record.
func MatchFromSession(s domain.Session) storage.MatchResult {
	finishedAt := s.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}
	return storage.MatchResult{
		SessionID:    s.ID,
		Difficulty:   s.Difficulty.String(),
		TotalPebbles: s.TotalPebbles,
		MaxPerTurn:   s.MaxPerTurn,
		FirstActor:   s.FirstActor.String(),
		Winner:       s.Winner.String(),
		StartedAt:    s.StartedAt,
		FinishedAt:   finishedAt,
	}
}
