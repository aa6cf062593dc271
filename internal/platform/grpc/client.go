// Package grpc holds client-side helpers shared by services that call the
// pebbles game over gRPC.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ClientFactory creates a client connection for a target.
type ClientFactory func(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// ConnectStage describes where a connect attempt failed.
type ConnectStage string

const (
	// ConnectStageClient indicates the client connection could not be created.
	ConnectStageClient ConnectStage = "client"
	// ConnectStageHealth indicates the peer never reported SERVING.
	ConnectStageHealth ConnectStage = "health"
)

// ConnectError wraps connect failures with the stage that produced them.
type ConnectError struct {
	Addr  string
	Stage ConnectStage
	Err   error
}

// Error implements the error interface.
func (e *ConnectError) Error() string {
	if e == nil {
		return "gRPC connect error"
	}
	return fmt.Sprintf("gRPC %s error for %s: %v", e.Stage, e.Addr, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConnectConfig tunes Connect.
type ConnectConfig struct {
	// Timeout bounds the health wait. Zero means the caller's context decides.
	Timeout time.Duration
	// Service is the health service name to check; empty checks the server.
	Service string
	// Logf receives progress messages while waiting.
	Logf func(string, ...any)
	// Options override DefaultClientOptions when non-empty.
	Options []gogrpc.DialOption
	// NewClient replaces gogrpc.NewClient in tests.
	NewClient ClientFactory
}

// DefaultClientOptions returns insecure transport credentials plus the OTel
// client stats handler so outbound calls carry trace context.
func DefaultClientOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// Connect creates a client connection to addr and waits until the peer's
// health service reports SERVING. The connection is closed on failure.
func Connect(ctx context.Context, addr string, cfg ConnectConfig) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	newClient := cfg.NewClient
	if newClient == nil {
		newClient = gogrpc.NewClient
	}
	opts := cfg.Options
	if len(opts) == 0 {
		opts = DefaultClientOptions()
	}

	conn, err := newClient(addr, opts...)
	if err != nil {
		return nil, &ConnectError{Addr: addr, Stage: ConnectStageClient, Err: err}
	}

	waitCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := WaitForHealth(waitCtx, conn, cfg.Service, cfg.Logf); err != nil {
		_ = conn.Close()
		return nil, &ConnectError{Addr: addr, Stage: ConnectStageHealth, Err: err}
	}
	return conn, nil
}
