package pebblesv1

import (
	"context"

	"google.golang.org/grpc"
)

// PebblesServiceClient is the client API for pebbles.v1.PebblesService.
type PebblesServiceClient interface {
	Init(ctx context.Context, in *InitRequest, opts ...grpc.CallOption) (*InitResponse, error)
	Turn(ctx context.Context, in *TurnRequest, opts ...grpc.CallOption) (*TurnResponse, error)
	GiveUp(ctx context.Context, in *GiveUpRequest, opts ...grpc.CallOption) (*GiveUpResponse, error)
	Restart(ctx context.Context, in *RestartRequest, opts ...grpc.CallOption) (*RestartResponse, error)
	GetState(ctx context.Context, in *GetStateRequest, opts ...grpc.CallOption) (*GetStateResponse, error)
	ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error)
}

type pebblesServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPebblesServiceClient returns a client that always uses the JSON codec.
func NewPebblesServiceClient(cc grpc.ClientConnInterface) PebblesServiceClient {
	return &pebblesServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pebblesServiceClient) Init(ctx context.Context, in *InitRequest, opts ...grpc.CallOption) (*InitResponse, error) {
	return invoke[InitResponse](ctx, c.cc, PebblesService_Init_FullMethodName, in, opts)
}

func (c *pebblesServiceClient) Turn(ctx context.Context, in *TurnRequest, opts ...grpc.CallOption) (*TurnResponse, error) {
	return invoke[TurnResponse](ctx, c.cc, PebblesService_Turn_FullMethodName, in, opts)
}

func (c *pebblesServiceClient) GiveUp(ctx context.Context, in *GiveUpRequest, opts ...grpc.CallOption) (*GiveUpResponse, error) {
	return invoke[GiveUpResponse](ctx, c.cc, PebblesService_GiveUp_FullMethodName, in, opts)
}

func (c *pebblesServiceClient) Restart(ctx context.Context, in *RestartRequest, opts ...grpc.CallOption) (*RestartResponse, error) {
	return invoke[RestartResponse](ctx, c.cc, PebblesService_Restart_FullMethodName, in, opts)
}

func (c *pebblesServiceClient) GetState(ctx context.Context, in *GetStateRequest, opts ...grpc.CallOption) (*GetStateResponse, error) {
	return invoke[GetStateResponse](ctx, c.cc, PebblesService_GetState_FullMethodName, in, opts)
}

func (c *pebblesServiceClient) ListMatches(ctx context.Context, in *ListMatchesRequest, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return invoke[ListMatchesResponse](ctx, c.cc, PebblesService_ListMatches_FullMethodName, in, opts)
}
