// Package sqlite provides a SQLite-backed pebbles storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/pebbles/internal/platform/grpc/pagination"
	"github.com/louisbranch/pebbles/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/pebbles/internal/services/pebbles/storage"
	"github.com/louisbranch/pebbles/internal/services/pebbles/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists match history and audit events in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordMatch inserts one finished match.
func (s *Store) RecordMatch(ctx context.Context, match storage.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID := strings.TrimSpace(match.SessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(match.Winner) == "" {
		return fmt.Errorf("winner is required")
	}
	finishedAt := match.FinishedAt.UTC()
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}
	startedAt := match.StartedAt.UTC()
	if startedAt.IsZero() {
		startedAt = finishedAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO matches (
		   session_id, difficulty, total_pebbles, max_per_turn,
		   first_actor, winner, started_at, finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID,
		match.Difficulty,
		int64(match.TotalPebbles),
		int64(match.MaxPerTurn),
		match.FirstActor,
		match.Winner,
		toMillis(startedAt),
		toMillis(finishedAt),
	)
	if err != nil {
		if isMatchUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("record match: %w", err)
	}
	return nil
}

const matchColumns = `seq, session_id, difficulty, total_pebbles, max_per_turn,
		        first_actor, winner, started_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (int64, storage.MatchResult, error) {
	var (
		seq        int64
		match      storage.MatchResult
		total      int64
		maxPerTurn int64
		startedAt  int64
		finishedAt int64
	)
	if err := row.Scan(
		&seq,
		&match.SessionID,
		&match.Difficulty,
		&total,
		&maxPerTurn,
		&match.FirstActor,
		&match.Winner,
		&startedAt,
		&finishedAt,
	); err != nil {
		return 0, storage.MatchResult{}, err
	}
	match.TotalPebbles = uint32(total)
	match.MaxPerTurn = uint32(maxPerTurn)
	match.StartedAt = fromMillis(startedAt)
	match.FinishedAt = fromMillis(finishedAt)
	return seq, match, nil
}

// GetMatch returns one match by session ID.
func (s *Store) GetMatch(ctx context.Context, sessionID string) (storage.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return storage.MatchResult{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MatchResult{}, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.MatchResult{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE session_id = ?`, sessionID)
	_, match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MatchResult{}, storage.ErrNotFound
		}
		return storage.MatchResult{}, fmt.Errorf("get match: %w", err)
	}
	return match, nil
}

// ListMatches returns one page of matches, most recent first.
func (s *Store) ListMatches(ctx context.Context, pageSize int, pageToken string) (storage.MatchPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.MatchPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MatchPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.MatchPage{}, fmt.Errorf("page size must be greater than zero")
	}
	before, err := pagination.DecodeCursor(pageToken)
	if err != nil {
		return storage.MatchPage{}, err
	}

	var rows *sql.Rows
	if before == 0 {
		rows, err = s.sqlDB.QueryContext(ctx,
			`SELECT `+matchColumns+` FROM matches ORDER BY seq DESC LIMIT ?`,
			pageSize+1,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx,
			`SELECT `+matchColumns+` FROM matches WHERE seq < ? ORDER BY seq DESC LIMIT ?`,
			before,
			pageSize+1,
		)
	}
	if err != nil {
		return storage.MatchPage{}, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	page := storage.MatchPage{Matches: make([]storage.MatchResult, 0, pageSize)}
	var seqs []int64
	for rows.Next() {
		seq, match, err := scanMatch(rows)
		if err != nil {
			return storage.MatchPage{}, fmt.Errorf("list matches: %w", err)
		}
		seqs = append(seqs, seq)
		page.Matches = append(page.Matches, match)
	}
	if err := rows.Err(); err != nil {
		return storage.MatchPage{}, fmt.Errorf("list matches: %w", err)
	}
	if len(page.Matches) > pageSize {
		page.NextPageToken = pagination.EncodeCursor(seqs[pageSize-1])
		page.Matches = page.Matches[:pageSize]
	}
	return page, nil
}

// AppendAuditEvent inserts one audit record.
func (s *Store) AppendAuditEvent(ctx context.Context, evt storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	method := strings.TrimSpace(evt.Method)
	if method == "" {
		return fmt.Errorf("method is required")
	}
	timestamp := evt.Timestamp.UTC()
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO audit_events (
		   timestamp, method, status_code, session_id, locale, trace_id, span_id, duration_ms
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		toMillis(timestamp),
		method,
		evt.StatusCode,
		evt.SessionID,
		evt.Locale,
		evt.TraceID,
		evt.SpanID,
		evt.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns the most recent audit events for a method, newest
// first. An empty method lists every event.
func (s *Store) ListAuditEvents(ctx context.Context, method string, limit int) ([]storage.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT timestamp, method, status_code, session_id, locale, trace_id, span_id, duration_ms
		   FROM audit_events
		  WHERE ? = '' OR method = ?
		  ORDER BY id DESC
		  LIMIT ?`,
		method, method, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []storage.AuditEvent
	for rows.Next() {
		var (
			evt        storage.AuditEvent
			timestamp  int64
			durationMS int64
		)
		if err := rows.Scan(&timestamp, &evt.Method, &evt.StatusCode, &evt.SessionID, &evt.Locale, &evt.TraceID, &evt.SpanID, &durationMS); err != nil {
			return nil, fmt.Errorf("list audit events: %w", err)
		}
		evt.Timestamp = fromMillis(timestamp)
		evt.Duration = time.Duration(durationMS) * time.Millisecond
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}

func isMatchUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "matches.session_id")
}

var (
	_ storage.MatchStore = (*Store)(nil)
	_ storage.AuditStore = (*Store)(nil)
)
