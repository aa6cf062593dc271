// Package pebblesv1 defines the pebbles.v1 wire contract: request and reply
// messages, the gRPC service descriptor, and a JSON codec that carries them.
package pebblesv1

import "time"

// Difficulty names the automated actor's policy on the wire.
type Difficulty string

const (
	DifficultyUnspecified Difficulty = ""
	DifficultyEasy        Difficulty = "EASY"
	DifficultyHard        Difficulty = "HARD"
)

// Player names a participant on the wire. The empty value means no winner.
type Player string

const (
	PlayerUnspecified Player = ""
	PlayerHuman       Player = "HUMAN"
	PlayerAutomated   Player = "AUTOMATED"
)

// EventType discriminates PebblesEvent.
type EventType string

const (
	EventCounterTurn EventType = "COUNTER_TURN"
	EventWon         EventType = "WON"
	EventRejected    EventType = "REJECTED"
)

// RejectReason explains a REJECTED event.
type RejectReason string

const (
	RejectReasonUnspecified    RejectReason = ""
	RejectReasonZero           RejectReason = "ZERO"
	RejectReasonAboveMax       RejectReason = "ABOVE_MAX"
	RejectReasonAboveRemaining RejectReason = "ABOVE_REMAINING"
	RejectReasonGameOver       RejectReason = "GAME_OVER"
)

// PebblesEvent is the reply to a game command.
//
// COUNTER_TURN carries the automated actor's move (0 when it did not move).
// WON carries the winner. REJECTED carries the reason; the session is unchanged.
type PebblesEvent struct {
	Type        EventType    `json:"type"`
	CounterTurn uint32       `json:"counter_turn,omitempty"`
	Winner      Player       `json:"winner,omitempty"`
	Reason      RejectReason `json:"reason,omitempty"`
	Remaining   uint32       `json:"remaining"`
}

// GameState is the serialized game session.
type GameState struct {
	SessionID         string     `json:"session_id"`
	PebblesCount      uint32     `json:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn"`
	PebblesRemaining  uint32     `json:"pebbles_remaining"`
	Difficulty        Difficulty `json:"difficulty"`
	FirstPlayer       Player     `json:"first_player"`
	Winner            Player     `json:"winner,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty"`
}

// InitRequest starts the first session.
type InitRequest struct {
	Difficulty        Difficulty `json:"difficulty"`
	PebblesCount      uint32     `json:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn"`
}

// InitResponse reports the automated opening move, if any, and the new state.
type InitResponse struct {
	Event *PebblesEvent `json:"event"`
	State *GameState    `json:"state"`
}

// TurnRequest removes Count pebbles on behalf of the human.
type TurnRequest struct {
	Count uint32 `json:"count"`
}

// GetCount returns the requested count, or 0 for a nil request.
func (r *TurnRequest) GetCount() uint32 {
	if r == nil {
		return 0
	}
	return r.Count
}

// TurnResponse carries the turn event and the resulting state.
type TurnResponse struct {
	Event *PebblesEvent `json:"event"`
	State *GameState    `json:"state"`
}

// GiveUpRequest concedes the session.
type GiveUpRequest struct{}

// GiveUpResponse always carries a WON event.
type GiveUpResponse struct {
	Event *PebblesEvent `json:"event"`
	State *GameState    `json:"state"`
}

// RestartRequest replaces the session.
type RestartRequest struct {
	Difficulty        Difficulty `json:"difficulty"`
	PebblesCount      uint32     `json:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn"`
}

// RestartResponse carries a COUNTER_TURN event and the new state.
type RestartResponse struct {
	Event *PebblesEvent `json:"event"`
	State *GameState    `json:"state"`
}

// GetStateRequest queries the current session.
type GetStateRequest struct{}

// GetStateResponse carries the current session.
type GetStateResponse struct {
	State *GameState `json:"state"`
}

// MatchResult is one finished session from history.
type MatchResult struct {
	SessionID         string     `json:"session_id"`
	Difficulty        Difficulty `json:"difficulty"`
	PebblesCount      uint32     `json:"pebbles_count"`
	MaxPebblesPerTurn uint32     `json:"max_pebbles_per_turn"`
	FirstPlayer       Player     `json:"first_player"`
	Winner            Player     `json:"winner"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        time.Time  `json:"finished_at"`
}

// ListMatchesRequest pages through match history.
type ListMatchesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

// GetPageSize returns the requested page size, or 0 for a nil request.
func (r *ListMatchesRequest) GetPageSize() int32 {
	if r == nil {
		return 0
	}
	return r.PageSize
}

// GetPageToken returns the requested page token, or "" for a nil request.
func (r *ListMatchesRequest) GetPageToken() string {
	if r == nil {
		return ""
	}
	return r.PageToken
}

// ListMatchesResponse carries one page of match history.
type ListMatchesResponse struct {
	Matches       []*MatchResult `json:"matches"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// GetSessionID returns the session id, or "" for a nil state.
func (s *GameState) GetSessionID() string {
	if s == nil {
		return ""
	}
	return s.SessionID
}

// GetState returns the state, or nil for a nil response.
func (r *InitResponse) GetState() *GameState {
	if r == nil {
		return nil
	}
	return r.State
}

// GetState returns the state, or nil for a nil response.
func (r *TurnResponse) GetState() *GameState {
	if r == nil {
		return nil
	}
	return r.State
}

// GetState returns the state, or nil for a nil response.
func (r *GiveUpResponse) GetState() *GameState {
	if r == nil {
		return nil
	}
	return r.State
}

// GetState returns the state, or nil for a nil response.
func (r *RestartResponse) GetState() *GameState {
	if r == nil {
		return nil
	}
	return r.State
}

// GetState returns the state, or nil for a nil response.
func (r *GetStateResponse) GetState() *GameState {
	if r == nil {
		return nil
	}
	return r.State
}
