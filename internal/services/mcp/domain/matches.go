package domain

import (
	"context"
	"fmt"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MatchListInput represents the MCP tool input for listing match history.
type MatchListInput struct {
	PageSize  int32  `json:"page_size,omitempty" jsonschema:"maximum matches to return (default 10, max 50)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous call"`
}

// MatchResult is one finished game.
type MatchResult struct {
	SessionID         string `json:"session_id" jsonschema:"session identifier"`
	Difficulty        string `json:"difficulty" jsonschema:"EASY or HARD"`
	PebblesCount      uint32 `json:"pebbles_count" jsonschema:"pebbles at the start of the game"`
	MaxPebblesPerTurn uint32 `json:"max_pebbles_per_turn" jsonschema:"most pebbles per turn"`
	FirstPlayer       string `json:"first_player" jsonschema:"HUMAN or AUTOMATED"`
	Winner            string `json:"winner" jsonschema:"HUMAN or AUTOMATED"`
	StartedAt         string `json:"started_at" jsonschema:"RFC3339 timestamp when the game started"`
	FinishedAt        string `json:"finished_at" jsonschema:"RFC3339 timestamp when the game ended"`
}

// MatchListResult represents the MCP tool output for listing match history.
type MatchListResult struct {
	Matches       []MatchResult `json:"matches" jsonschema:"finished games, newest first"`
	NextPageToken string        `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// MatchListTool defines the MCP tool schema for listing match history.
func MatchListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pebbles_matches",
		Description: "Lists finished games, newest first.",
	}
}

// MatchListHandler executes a match history request.
func MatchListHandler(client pebblesv1.PebblesServiceClient) mcp.ToolHandlerFor[MatchListInput, MatchListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MatchListInput) (*mcp.CallToolResult, MatchListResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.ListMatches(runCtx, &pebblesv1.ListMatchesRequest{
			PageSize:  input.PageSize,
			PageToken: input.PageToken,
		})
		if err != nil {
			return nil, MatchListResult{}, fmt.Errorf("pebbles matches failed: %w", err)
		}
		if response == nil {
			return nil, MatchListResult{}, fmt.Errorf("pebbles matches response is missing")
		}

		result := MatchListResult{
			Matches:       make([]MatchResult, 0, len(response.Matches)),
			NextPageToken: response.NextPageToken,
		}
		for _, match := range response.Matches {
			if match == nil {
				continue
			}
			result.Matches = append(result.Matches, MatchResult{
				SessionID:         match.SessionID,
				Difficulty:        string(match.Difficulty),
				PebblesCount:      match.PebblesCount,
				MaxPebblesPerTurn: match.MaxPebblesPerTurn,
				FirstPlayer:       string(match.FirstPlayer),
				Winner:            string(match.Winner),
				StartedAt:         formatTimestamp(match.StartedAt),
				FinishedAt:        formatTimestamp(match.FinishedAt),
			})
		}
		return &mcp.CallToolResult{}, result, nil
	}
}
