package mcpfakes

import (
	"context"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// PebblesClient is a configurable fake for pebbles MCP tool tests.
type PebblesClient struct {
	InitResponse        *pebblesv1.InitResponse
	TurnResponse        *pebblesv1.TurnResponse
	GiveUpResponse      *pebblesv1.GiveUpResponse
	RestartResponse     *pebblesv1.RestartResponse
	GetStateResponse    *pebblesv1.GetStateResponse
	ListMatchesResponse *pebblesv1.ListMatchesResponse
	Err                 error

	LastInitRequest        *pebblesv1.InitRequest
	LastTurnRequest        *pebblesv1.TurnRequest
	LastRestartRequest     *pebblesv1.RestartRequest
	LastListMatchesRequest *pebblesv1.ListMatchesRequest
	// LastLocale holds the accept-language metadata of the latest call.
	LastLocale string
}

var _ pebblesv1.PebblesServiceClient = (*PebblesClient)(nil)

func (f *PebblesClient) record(ctx context.Context) {
	f.LastLocale = ""
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if values := md.Get("accept-language"); len(values) > 0 {
			f.LastLocale = values[0]
		}
	}
}

// Init records the request and returns the configured response.
func (f *PebblesClient) Init(ctx context.Context, req *pebblesv1.InitRequest, _ ...grpc.CallOption) (*pebblesv1.InitResponse, error) {
	f.record(ctx)
	f.LastInitRequest = req
	return f.InitResponse, f.Err
}

// Turn records the request and returns the configured response.
func (f *PebblesClient) Turn(ctx context.Context, req *pebblesv1.TurnRequest, _ ...grpc.CallOption) (*pebblesv1.TurnResponse, error) {
	f.record(ctx)
	f.LastTurnRequest = req
	return f.TurnResponse, f.Err
}

// GiveUp returns the configured response.
func (f *PebblesClient) GiveUp(ctx context.Context, _ *pebblesv1.GiveUpRequest, _ ...grpc.CallOption) (*pebblesv1.GiveUpResponse, error) {
	f.record(ctx)
	return f.GiveUpResponse, f.Err
}

// Restart records the request and returns the configured response.
func (f *PebblesClient) Restart(ctx context.Context, req *pebblesv1.RestartRequest, _ ...grpc.CallOption) (*pebblesv1.RestartResponse, error) {
	f.record(ctx)
	f.LastRestartRequest = req
	return f.RestartResponse, f.Err
}

// GetState returns the configured response.
func (f *PebblesClient) GetState(ctx context.Context, _ *pebblesv1.GetStateRequest, _ ...grpc.CallOption) (*pebblesv1.GetStateResponse, error) {
	f.record(ctx)
	return f.GetStateResponse, f.Err
}

// ListMatches records the request and returns the configured response.
func (f *PebblesClient) ListMatches(ctx context.Context, req *pebblesv1.ListMatchesRequest, _ ...grpc.CallOption) (*pebblesv1.ListMatchesResponse, error) {
	f.record(ctx)
	f.LastListMatchesRequest = req
	return f.ListMatchesResponse, f.Err
}
