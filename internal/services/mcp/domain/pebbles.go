package domain

import (
	"context"
	"fmt"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GameConfigInput represents the MCP tool input for starting or restarting a game.
type GameConfigInput struct {
	Difficulty        string `json:"difficulty" jsonschema:"EASY or HARD"`
	PebblesCount      uint32 `json:"pebbles_count" jsonschema:"pebbles on the table; must exceed max_pebbles_per_turn"`
	MaxPebblesPerTurn uint32 `json:"max_pebbles_per_turn" jsonschema:"most pebbles a player may take in one turn (at least 1)"`
	Locale            string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// TurnInput represents the MCP tool input for a human turn.
type TurnInput struct {
	Count  uint32 `json:"count" jsonschema:"pebbles to remove"`
	Locale string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// GameQueryInput represents MCP tool input that only carries a locale.
type GameQueryInput struct {
	Locale string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// GameStateOutput represents the MCP tool output for reading the game state.
type GameStateOutput struct {
	State GameStateResult `json:"state" jsonschema:"current game state"`
}

// InitTool defines the MCP tool schema for starting the game.
func InitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pebbles_init",
		Description: "Starts the pebbles game. Fails if a game already exists; use pebbles_restart to replace it. The automated player may move first.",
	}
}

// InitHandler executes a game start request.
func InitHandler(client pebblesv1.PebblesServiceClient) mcp.ToolHandlerFor[GameConfigInput, MoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameConfigInput) (*mcp.CallToolResult, MoveResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.Init(outgoingContext(runCtx, input.Locale), &pebblesv1.InitRequest{
			Difficulty:        difficultyFromString(input.Difficulty),
			PebblesCount:      input.PebblesCount,
			MaxPebblesPerTurn: input.MaxPebblesPerTurn,
		})
		if err != nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles init failed: %w", err)
		}
		if response == nil || response.State == nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles init response is missing")
		}
		return &mcp.CallToolResult{}, MoveResult{Event: eventResult(response.Event), State: stateResult(response.State)}, nil
	}
}

// TurnTool defines the MCP tool schema for a human turn.
func TurnTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pebbles_turn",
		Description: "Removes pebbles on behalf of the human player. Invalid counts are rejected without changing the game; otherwise the automated player answers.",
	}
}

// TurnHandler executes a human turn.
func TurnHandler(client pebblesv1.PebblesServiceClient) mcp.ToolHandlerFor[TurnInput, MoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TurnInput) (*mcp.CallToolResult, MoveResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.Turn(outgoingContext(runCtx, input.Locale), &pebblesv1.TurnRequest{Count: input.Count})
		if err != nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles turn failed: %w", err)
		}
		if response == nil || response.Event == nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles turn response is missing")
		}
		return &mcp.CallToolResult{}, MoveResult{Event: eventResult(response.Event), State: stateResult(response.State)}, nil
	}
}

// GiveUpTool defines the MCP tool schema for conceding.
func GiveUpTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pebbles_give_up",
		Description: "Concedes the game to the automated player. A finished game keeps its winner.",
	}
}

// GiveUpHandler executes a give-up request.
func GiveUpHandler(client pebblesv1.PebblesServiceClient) mcp.ToolHandlerFor[GameQueryInput, MoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameQueryInput) (*mcp.CallToolResult, MoveResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.GiveUp(outgoingContext(runCtx, input.Locale), &pebblesv1.GiveUpRequest{})
		if err != nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles give up failed: %w", err)
		}
		if response == nil || response.Event == nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles give up response is missing")
		}
		return &mcp.CallToolResult{}, MoveResult{Event: eventResult(response.Event), State: stateResult(response.State)}, nil
	}
}

// RestartTool defines the MCP tool schema for replacing the game.
func RestartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pebbles_restart",
		Description: "Discards the current game, if any, and starts a new one with the given configuration.",
	}
}

// RestartHandler executes a restart request.
func RestartHandler(client pebblesv1.PebblesServiceClient) mcp.ToolHandlerFor[GameConfigInput, MoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameConfigInput) (*mcp.CallToolResult, MoveResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.Restart(outgoingContext(runCtx, input.Locale), &pebblesv1.RestartRequest{
			Difficulty:        difficultyFromString(input.Difficulty),
			PebblesCount:      input.PebblesCount,
			MaxPebblesPerTurn: input.MaxPebblesPerTurn,
		})
		if err != nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles restart failed: %w", err)
		}
		if response == nil || response.State == nil {
			return nil, MoveResult{}, fmt.Errorf("pebbles restart response is missing")
		}
		return &mcp.CallToolResult{}, MoveResult{Event: eventResult(response.Event), State: stateResult(response.State)}, nil
	}
}

// StateTool defines the MCP tool schema for reading the game.
func StateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pebbles_state",
		Description: "Returns the current game state without changing it.",
	}
}

// StateHandler executes a state query.
func StateHandler(client pebblesv1.PebblesServiceClient) mcp.ToolHandlerFor[GameQueryInput, GameStateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameQueryInput) (*mcp.CallToolResult, GameStateOutput, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		response, err := client.GetState(outgoingContext(runCtx, input.Locale), &pebblesv1.GetStateRequest{})
		if err != nil {
			return nil, GameStateOutput{}, fmt.Errorf("pebbles state failed: %w", err)
		}
		if response == nil || response.State == nil {
			return nil, GameStateOutput{}, fmt.Errorf("pebbles state response is missing")
		}
		return &mcp.CallToolResult{}, GameStateOutput{State: stateResult(response.State)}, nil
	}
}
