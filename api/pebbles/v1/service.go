package pebblesv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pebbles.v1.PebblesService"

const (
	PebblesService_Init_FullMethodName        = "/pebbles.v1.PebblesService/Init"
	PebblesService_Turn_FullMethodName        = "/pebbles.v1.PebblesService/Turn"
	PebblesService_GiveUp_FullMethodName      = "/pebbles.v1.PebblesService/GiveUp"
	PebblesService_Restart_FullMethodName     = "/pebbles.v1.PebblesService/Restart"
	PebblesService_GetState_FullMethodName    = "/pebbles.v1.PebblesService/GetState"
	PebblesService_ListMatches_FullMethodName = "/pebbles.v1.PebblesService/ListMatches"
)

// PebblesServiceServer is the server API for pebbles.v1.PebblesService.
type PebblesServiceServer interface {
	Init(context.Context, *InitRequest) (*InitResponse, error)
	Turn(context.Context, *TurnRequest) (*TurnResponse, error)
	GiveUp(context.Context, *GiveUpRequest) (*GiveUpResponse, error)
	Restart(context.Context, *RestartRequest) (*RestartResponse, error)
	GetState(context.Context, *GetStateRequest) (*GetStateResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
}

// UnimplementedPebblesServiceServer returns Unimplemented for every method.
type UnimplementedPebblesServiceServer struct{}

func (UnimplementedPebblesServiceServer) Init(context.Context, *InitRequest) (*InitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Init not implemented")
}

func (UnimplementedPebblesServiceServer) Turn(context.Context, *TurnRequest) (*TurnResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Turn not implemented")
}

func (UnimplementedPebblesServiceServer) GiveUp(context.Context, *GiveUpRequest) (*GiveUpResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GiveUp not implemented")
}

func (UnimplementedPebblesServiceServer) Restart(context.Context, *RestartRequest) (*RestartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Restart not implemented")
}

func (UnimplementedPebblesServiceServer) GetState(context.Context, *GetStateRequest) (*GetStateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetState not implemented")
}

func (UnimplementedPebblesServiceServer) ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMatches not implemented")
}

// RegisterPebblesServiceServer registers srv with the gRPC registrar.
func RegisterPebblesServiceServer(s grpc.ServiceRegistrar, srv PebblesServiceServer) {
	s.RegisterService(&PebblesService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](fullMethod string, call func(PebblesServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PebblesServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PebblesServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PebblesService_ServiceDesc is the grpc.ServiceDesc for PebblesService.
var PebblesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PebblesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Init",
			Handler:    unaryHandler(PebblesService_Init_FullMethodName, PebblesServiceServer.Init),
		},
		{
			MethodName: "Turn",
			Handler:    unaryHandler(PebblesService_Turn_FullMethodName, PebblesServiceServer.Turn),
		},
		{
			MethodName: "GiveUp",
			Handler:    unaryHandler(PebblesService_GiveUp_FullMethodName, PebblesServiceServer.GiveUp),
		},
		{
			MethodName: "Restart",
			Handler:    unaryHandler(PebblesService_Restart_FullMethodName, PebblesServiceServer.Restart),
		},
		{
			MethodName: "GetState",
			Handler:    unaryHandler(PebblesService_GetState_FullMethodName, PebblesServiceServer.GetState),
		},
		{
			MethodName: "ListMatches",
			Handler:    unaryHandler(PebblesService_ListMatches_FullMethodName, PebblesServiceServer.ListMatches),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pebbles/v1/pebbles.proto",
}
