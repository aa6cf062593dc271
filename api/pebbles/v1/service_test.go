package pebblesv1

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type turnOnlyServer struct {
	UnimplementedPebblesServiceServer
	contentType string
	lastCount   uint32
}

func (s *turnOnlyServer) Turn(ctx context.Context, in *TurnRequest) (*TurnResponse, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("content-type"); len(values) > 0 {
			s.contentType = values[0]
		}
	}
	s.lastCount = in.GetCount()
	return &TurnResponse{
		Event: &PebblesEvent{Type: EventCounterTurn, CounterTurn: 4, Remaining: 66},
		State: &GameState{SessionID: "s-1", PebblesCount: 72, MaxPebblesPerTurn: 5, PebblesRemaining: 66, Difficulty: DifficultyHard, FirstPlayer: PlayerHuman},
	}, nil
}

func startServer(t *testing.T, srv PebblesServiceServer, opts ...grpc.ServerOption) PebblesServiceClient {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer(opts...)
	RegisterPebblesServiceServer(server, srv)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewPebblesServiceClient(conn)
}

func TestClientServerRoundTrip(t *testing.T) {
	srv := &turnOnlyServer{}
	client := startServer(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := client.Turn(ctx, &TurnRequest{Count: 2})
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if srv.lastCount != 2 {
		t.Fatalf("server count = %d, want 2", srv.lastCount)
	}
	if srv.contentType != "application/grpc+json" {
		t.Fatalf("content-type = %q, want application/grpc+json", srv.contentType)
	}
	if resp.Event.Type != EventCounterTurn || resp.Event.CounterTurn != 4 {
		t.Fatalf("event = %+v, want counter turn 4", resp.Event)
	}
	if resp.State.Difficulty != DifficultyHard || resp.State.PebblesRemaining != 66 {
		t.Fatalf("state = %+v", resp.State)
	}
}

func TestUnimplementedMethods(t *testing.T) {
	client := startServer(t, &turnOnlyServer{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := client.Init(ctx, &InitRequest{}); status.Code(err) != codes.Unimplemented {
		t.Fatalf("init code = %v, want %v", status.Code(err), codes.Unimplemented)
	}
	if _, err := client.ListMatches(ctx, &ListMatchesRequest{}); status.Code(err) != codes.Unimplemented {
		t.Fatalf("list matches code = %v, want %v", status.Code(err), codes.Unimplemented)
	}
}

func TestInterceptorSeesFullMethod(t *testing.T) {
	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	client := startServer(t, &turnOnlyServer{}, grpc.UnaryInterceptor(interceptor))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Turn(ctx, &TurnRequest{Count: 1}); err != nil {
		t.Fatalf("turn: %v", err)
	}
	if seen != PebblesService_Turn_FullMethodName {
		t.Fatalf("full method = %q, want %q", seen, PebblesService_Turn_FullMethodName)
	}
}

func TestCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	if codec == nil {
		t.Fatal("expected json codec to be registered")
	}

	data, err := codec.Marshal(&PebblesEvent{Type: EventWon, Winner: PlayerAutomated})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["type"] != "WON" || decoded["winner"] != "AUTOMATED" {
		t.Fatalf("encoded event = %s", data)
	}
	if _, ok := decoded["reason"]; ok {
		t.Fatalf("expected empty reason to be omitted: %s", data)
	}

	var empty GiveUpRequest
	if err := codec.Unmarshal(nil, &empty); err != nil {
		t.Fatalf("unmarshal empty payload: %v", err)
	}
}

func TestRequestGettersAreNilSafe(t *testing.T) {
	var turn *TurnRequest
	if turn.GetCount() != 0 {
		t.Fatal("expected zero count for nil request")
	}
	var list *ListMatchesRequest
	if list.GetPageSize() != 0 || list.GetPageToken() != "" {
		t.Fatal("expected zero values for nil request")
	}
}

func TestResponseGettersAreNilSafe(t *testing.T) {
	var resp *TurnResponse
	if resp.GetState().GetSessionID() != "" {
		t.Fatal("expected empty session id for nil response")
	}
	full := &GetStateResponse{State: &GameState{SessionID: "s-9"}}
	if got := full.GetState().GetSessionID(); got != "s-9" {
		t.Fatalf("session id = %q, want %q", got, "s-9")
	}
}
