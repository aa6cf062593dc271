// Package pebblesfakes provides in-memory fakes for pebbles tests.
package pebblesfakes

import (
	"context"
	"sync"

	"github.com/louisbranch/pebbles/internal/services/pebbles/storage"
)

// MatchStore is a lightweight in-memory MatchStore fake for tests.
type MatchStore struct {
	mu      sync.Mutex
	Matches []storage.MatchResult
	Err     error
}

// NewMatchStore constructs an empty MatchStore fake.
func NewMatchStore() *MatchStore {
	return &MatchStore{}
}

func (s *MatchStore) RecordMatch(_ context.Context, match storage.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Matches {
		if existing.SessionID == match.SessionID {
			return storage.ErrAlreadyExists
		}
	}
	s.Matches = append(s.Matches, match)
	return nil
}

func (s *MatchStore) GetMatch(_ context.Context, sessionID string) (storage.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.Matches {
		if match.SessionID == sessionID {
			return match, nil
		}
	}
	return storage.MatchResult{}, storage.ErrNotFound
}

// ListMatches returns every recorded match newest first, ignoring paging.
func (s *MatchStore) ListMatches(_ context.Context, _ int, _ string) (storage.MatchPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return storage.MatchPage{}, s.Err
	}
	page := storage.MatchPage{Matches: make([]storage.MatchResult, 0, len(s.Matches))}
	for i := len(s.Matches) - 1; i >= 0; i-- {
		page.Matches = append(page.Matches, s.Matches[i])
	}
	return page, nil
}

// Snapshot returns a copy of the recorded matches.
func (s *MatchStore) Snapshot() []storage.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.MatchResult(nil), s.Matches...)
}

// AuditStore is an in-memory AuditStore fake for tests.
type AuditStore struct {
	mu     sync.Mutex
	Events []storage.AuditEvent
	Err    error
}

// NewAuditStore constructs an empty AuditStore fake.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) AppendAuditEvent(_ context.Context, evt storage.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, evt)
	return nil
}

// Snapshot returns a copy of the appended events.
func (s *AuditStore) Snapshot() []storage.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.AuditEvent(nil), s.Events...)
}

var (
	_ storage.MatchStore = (*MatchStore)(nil)
	_ storage.AuditStore = (*AuditStore)(nil)
)
