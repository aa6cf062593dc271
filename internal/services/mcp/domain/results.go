package domain

import (
	"context"
	"strings"
	"time"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"google.golang.org/grpc/metadata"
)

// EventResult is the MCP rendering of a game event.
type EventResult struct {
	Type        string `json:"type" jsonschema:"COUNTER_TURN, WON or REJECTED"`
	CounterTurn uint32 `json:"counter_turn" jsonschema:"pebbles removed by the automated player (0 when it did not move)"`
	Winner      string `json:"winner,omitempty" jsonschema:"HUMAN or AUTOMATED when the game was won"`
	Reason      string `json:"reason,omitempty" jsonschema:"why a turn was rejected (ZERO, ABOVE_MAX, ABOVE_REMAINING, GAME_OVER)"`
	Remaining   uint32 `json:"remaining" jsonschema:"pebbles left after the event"`
}

// GameStateResult is the MCP rendering of the game session.
type GameStateResult struct {
	SessionID         string `json:"session_id" jsonschema:"session identifier"`
	PebblesCount      uint32 `json:"pebbles_count" jsonschema:"pebbles at the start of the game"`
	MaxPebblesPerTurn uint32 `json:"max_pebbles_per_turn" jsonschema:"most pebbles a player may take in one turn"`
	PebblesRemaining  uint32 `json:"pebbles_remaining" jsonschema:"pebbles left on the table"`
	Difficulty        string `json:"difficulty" jsonschema:"EASY or HARD"`
	FirstPlayer       string `json:"first_player" jsonschema:"HUMAN or AUTOMATED"`
	Winner            string `json:"winner,omitempty" jsonschema:"winner once the game is over"`
	StartedAt         string `json:"started_at" jsonschema:"RFC3339 timestamp when the game started"`
	FinishedAt        string `json:"finished_at,omitempty" jsonschema:"RFC3339 timestamp when the game ended"`
}

// MoveResult is returned by tools that change the game.
type MoveResult struct {
	Event EventResult     `json:"event" jsonschema:"what happened"`
	State GameStateResult `json:"state" jsonschema:"game state after the event"`
}

func eventResult(event *pebblesv1.PebblesEvent) EventResult {
	if event == nil {
		return EventResult{}
	}
	return EventResult{
		Type:        string(event.Type),
		CounterTurn: event.CounterTurn,
		Winner:      string(event.Winner),
		Reason:      string(event.Reason),
		Remaining:   event.Remaining,
	}
}

func stateResult(state *pebblesv1.GameState) GameStateResult {
	if state == nil {
		return GameStateResult{}
	}
	result := GameStateResult{
		SessionID:         state.SessionID,
		PebblesCount:      state.PebblesCount,
		MaxPebblesPerTurn: state.MaxPebblesPerTurn,
		PebblesRemaining:  state.PebblesRemaining,
		Difficulty:        string(state.Difficulty),
		FirstPlayer:       string(state.FirstPlayer),
		Winner:            string(state.Winner),
		StartedAt:         formatTimestamp(state.StartedAt),
	}
	if state.FinishedAt != nil {
		result.FinishedAt = formatTimestamp(*state.FinishedAt)
	}
	return result
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

// difficultyFromString normalizes MCP input. Unknown values pass through so
// the game service rejects them with a localized error.
func difficultyFromString(value string) pebblesv1.Difficulty {
	return pebblesv1.Difficulty(strings.ToUpper(strings.TrimSpace(value)))
}

// outgoingContext forwards the caller's preferred locale to the game service.
func outgoingContext(ctx context.Context, locale string) context.Context {
	if locale = strings.TrimSpace(locale); locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "accept-language", locale)
}
