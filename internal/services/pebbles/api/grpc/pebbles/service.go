// Package pebbles implements the pebbles.v1 gRPC service on top of the game
// engine and match history storage.
package pebbles

import (
	"context"
	"strings"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	apperrors "github.com/louisbranch/pebbles/internal/platform/errors"
	"github.com/louisbranch/pebbles/internal/platform/grpc/pagination"
	"github.com/louisbranch/pebbles/internal/platform/requestctx"
	"github.com/louisbranch/pebbles/internal/services/pebbles/domain"
	"github.com/louisbranch/pebbles/internal/services/pebbles/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	defaultListMatchesPageSize = 10
	maxListMatchesPageSize     = 50
)

// Engine is the game engine surface the service drives.
type Engine interface {
	Initialize(domain.Config) (domain.Opening, error)
	ApplyTurn(count uint32) (domain.TurnOutcome, error)
	ApplyGiveUp() (domain.Session, error)
	Restart(domain.Config) (domain.Opening, error)
	Snapshot() (domain.Session, error)
}

// Service exposes pebbles.v1 gRPC operations.
type Service struct {
	pebblesv1.UnimplementedPebblesServiceServer
	engine  Engine
	matches storage.MatchStore
}

// NewService creates a pebbles service. matches may be nil, in which case
// ListMatches reports an internal error.
func NewService(engine Engine, matches storage.MatchStore) *Service {
	return &Service{
		engine:  engine,
		matches: matches,
	}
}

// Init starts the first session.
func (s *Service) Init(ctx context.Context, in *pebblesv1.InitRequest) (*pebblesv1.InitResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "init request is required")
	}
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "game engine is not configured")
	}

	opening, err := s.engine.Initialize(configFromWire(in.Difficulty, in.PebblesCount, in.MaxPebblesPerTurn))
	if err != nil {
		return nil, apperrors.HandleError(err, localeFromContext(ctx))
	}
	return &pebblesv1.InitResponse{
		Event: counterTurnEvent(opening.AutomatedCount, opening.Session.Remaining),
		State: stateToWire(opening.Session),
	}, nil
}

// Turn applies a human move. Invalid counts reply with a REJECTED event.
func (s *Service) Turn(ctx context.Context, in *pebblesv1.TurnRequest) (*pebblesv1.TurnResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "turn request is required")
	}
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "game engine is not configured")
	}

	outcome, err := s.engine.ApplyTurn(in.GetCount())
	if err != nil {
		return nil, apperrors.HandleError(err, localeFromContext(ctx))
	}
	return &pebblesv1.TurnResponse{
		Event: turnEvent(outcome),
		State: stateToWire(outcome.Session),
	}, nil
}

// GiveUp concedes the session to the automated actor.
func (s *Service) GiveUp(ctx context.Context, in *pebblesv1.GiveUpRequest) (*pebblesv1.GiveUpResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "give up request is required")
	}
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "game engine is not configured")
	}

	session, err := s.engine.ApplyGiveUp()
	if err != nil {
		return nil, apperrors.HandleError(err, localeFromContext(ctx))
	}
	return &pebblesv1.GiveUpResponse{
		Event: &pebblesv1.PebblesEvent{
			Type:      pebblesv1.EventWon,
			Winner:    actorToWire(session.Winner),
			Remaining: session.Remaining,
		},
		State: stateToWire(session),
	}, nil
}

// Restart replaces the session.
func (s *Service) Restart(ctx context.Context, in *pebblesv1.RestartRequest) (*pebblesv1.RestartResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "restart request is required")
	}
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "game engine is not configured")
	}

	opening, err := s.engine.Restart(configFromWire(in.Difficulty, in.PebblesCount, in.MaxPebblesPerTurn))
	if err != nil {
		return nil, apperrors.HandleError(err, localeFromContext(ctx))
	}
	return &pebblesv1.RestartResponse{
		Event: counterTurnEvent(opening.AutomatedCount, opening.Session.Remaining),
		State: stateToWire(opening.Session),
	}, nil
}

// GetState returns the current session without modifying it.
func (s *Service) GetState(ctx context.Context, in *pebblesv1.GetStateRequest) (*pebblesv1.GetStateResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get state request is required")
	}
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "game engine is not configured")
	}

	session, err := s.engine.Snapshot()
	if err != nil {
		return nil, apperrors.HandleError(err, localeFromContext(ctx))
	}
	return &pebblesv1.GetStateResponse{State: stateToWire(session)}, nil
}

// ListMatches returns a page of finished matches, most recent first.
func (s *Service) ListMatches(ctx context.Context, in *pebblesv1.ListMatchesRequest) (*pebblesv1.ListMatchesResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list matches request is required")
	}
	if s == nil || s.matches == nil {
		return nil, status.Error(codes.Internal, "match store is not configured")
	}
	if _, err := pagination.DecodeCursor(in.GetPageToken()); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	pageSize := pagination.ClampPageSize(in.GetPageSize(), pagination.PageSizeConfig{
		Default: defaultListMatchesPageSize,
		Max:     maxListMatchesPageSize,
	})
	page, err := s.matches.ListMatches(ctx, pageSize, in.GetPageToken())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list matches: %v", err)
	}

	resp := &pebblesv1.ListMatchesResponse{
		Matches:       make([]*pebblesv1.MatchResult, 0, len(page.Matches)),
		NextPageToken: page.NextPageToken,
	}
	for _, match := range page.Matches {
		resp.Matches = append(resp.Matches, matchToWire(match))
	}
	return resp, nil
}

// localeFromContext prefers the locale resolved by transport middleware and
// falls back to raw accept-language metadata.
func localeFromContext(ctx context.Context) string {
	if locale := requestctx.LocaleFromContext(ctx); locale != "" {
		return locale
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return strings.Join(md.Get("accept-language"), ",")
}
