package domain

import (
	apperrors "github.com/louisbranch/pebbles/internal/platform/errors"
)

// EasyMove maps a random draw onto [1, min(remaining, maxPerTurn)].
func EasyMove(draw, remaining, maxPerTurn uint32) uint32 {
	bound := maxPerTurn
	if remaining < maxPerTurn {
		bound = remaining
	}
	if bound == 0 {
		return 0
	}
	if count := draw % bound; count != 0 {
		return count
	}
	return bound
}

// HardMove leaves the pool at a multiple of maxPerTurn+1 when possible and
// takes maxPerTurn when it already is one.
func HardMove(remaining, maxPerTurn uint32) uint32 {
	if remaining == 0 {
		return 0
	}
	// maxPerTurn < TotalPebbles, so maxPerTurn+1 cannot overflow.
	if target := remaining % (maxPerTurn + 1); target != 0 {
		return target
	}
	return maxPerTurn
}

func (e *Engine) automatedMove(s Session) (uint32, error) {
	switch s.Difficulty {
	case DifficultyEasy:
		draw, err := e.random.Uint32()
		if err != nil {
			return 0, apperrors.Wrap(apperrors.CodeRandomUnavailable, "draw easy move", err)
		}
		return EasyMove(draw, s.Remaining, s.MaxPerTurn), nil
	case DifficultyHard:
		return HardMove(s.Remaining, s.MaxPerTurn), nil
	default:
		return 0, apperrors.New(apperrors.CodeInvalidConfiguration, "difficulty is required")
	}
}
