package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/louisbranch/pebbles/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/pebbles/internal/platform/grpc"
	"github.com/louisbranch/pebbles/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg.GRPCAddr, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport connects to the game and serves MCP over transport.
func runWithTransport(ctx context.Context, grpcAddr string, transport mcp.Transport) error {
	conn, err := dialGame(ctx, grpcAddr)
	if err != nil {
		return err
	}
	server, err := newServer(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// runWithHTTPTransport serves MCP over streamable HTTP. The listener binds to
// localhost unless an address is configured.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		httpAddr = discovery.DefaultHTTPAddr(discovery.ServiceMCP)
	}

	conn, err := dialGame(ctx, cfg.GRPCAddr)
	if err != nil {
		return err
	}
	server, err := newServer(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Printf("close gRPC connection: %v", err)
		}
	}()

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", httpAddr, err)
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.mcpServer
	}, nil)
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	go server.monitorHealth(ctx)

	log.Printf("MCP HTTP server listening at %v", listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}

// dialGame connects to the game service and waits for it to report healthy.
func dialGame(ctx context.Context, grpcAddr string) (*grpc.ClientConn, error) {
	addr := discovery.OrDefaultGRPCAddr(grpcAddr, discovery.ServicePebbles)
	logf := func(format string, args ...any) {
		log.Printf("game %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.Connect(ctx, addr, platformgrpc.ConnectConfig{
		Timeout: timeouts.GRPCDial,
		Service: pebblesv1.ServiceName,
		Logf:    logf,
	})
	if err != nil {
		var connectErr *platformgrpc.ConnectError
		if errors.As(err, &connectErr) && connectErr.Stage == platformgrpc.ConnectStageClient {
			return nil, fmt.Errorf("connect to game server at %s: %w", addr, connectErr.Err)
		}
		return nil, err
	}
	return conn, nil
}
