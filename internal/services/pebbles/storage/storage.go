// Package storage defines persistence contracts for pebbles match history and
// request auditing. Live sessions are held by the engine and never stored.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a match was already recorded for the session.
	ErrAlreadyExists = errors.New("record already exists")
)

// MatchResult stores one finished session.
type MatchResult struct {
	SessionID    string
	Difficulty   string
	TotalPebbles uint32
	MaxPerTurn   uint32
	FirstActor   string
	Winner       string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// MatchPage stores one page of match results, most recent first.
type MatchPage struct {
	Matches       []MatchResult
	NextPageToken string
}

// MatchStore persists finished matches.
type MatchStore interface {
	RecordMatch(ctx context.Context, match MatchResult) error
	GetMatch(ctx context.Context, sessionID string) (MatchResult, error)
	ListMatches(ctx context.Context, pageSize int, pageToken string) (MatchPage, error)
}

// AuditEvent stores one handled RPC.
type AuditEvent struct {
	Timestamp  time.Time
	Method     string
	StatusCode string
	SessionID  string
	Locale     string
	TraceID    string
	SpanID     string
	Duration   time.Duration
}

// AuditStore appends audit events.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, evt AuditEvent) error
}
