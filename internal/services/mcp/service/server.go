package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/louisbranch/pebbles/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	serverName    = "pebbles-mcp"
	serverVersion = "0.1.0"

	healthCheckInterval = 30 * time.Second
)

// TransportKind identifies the MCP transport.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	GRPCAddr  string
	Transport TransportKind
	// HTTPAddr is used by TransportHTTP. Defaults to the discovery convention.
	HTTPAddr string
}

// Server hosts the MCP server and its connection to the game service.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// newServer registers every pebbles tool against a client built on conn.
func newServer(conn *grpc.ClientConn) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	var client pebblesv1.PebblesServiceClient
	if conn != nil {
		client = pebblesv1.NewPebblesServiceClient(conn)
	}
	registerTools(mcpServer, client)
	return &Server{mcpServer: mcpServer, conn: conn}, nil
}

func registerTools(server *mcp.Server, client pebblesv1.PebblesServiceClient) {
	mcp.AddTool(server, domain.InitTool(), domain.InitHandler(client))
	mcp.AddTool(server, domain.TurnTool(), domain.TurnHandler(client))
	mcp.AddTool(server, domain.GiveUpTool(), domain.GiveUpHandler(client))
	mcp.AddTool(server, domain.RestartTool(), domain.RestartHandler(client))
	mcp.AddTool(server, domain.StateTool(), domain.StateHandler(client))
	mcp.AddTool(server, domain.MatchListTool(), domain.MatchListHandler(client))
}

// monitorHealth logs when the game service stops reporting SERVING. It never
// stops the MCP server; individual tool calls surface gRPC errors.
func (s *Server) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn == nil {
				log.Printf("gRPC connection is nil, health check skipped")
				continue
			}
			callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			response, err := grpc_health_v1.NewHealthClient(s.conn).Check(callCtx, &grpc_health_v1.HealthCheckRequest{
				Service: pebblesv1.ServiceName,
			})
			cancel()
			if err != nil {
				log.Printf("gRPC health check failed: %v", err)
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				log.Printf("gRPC health check status: %s", response.GetStatus().String())
			}
		}
	}
}

// Close closes the gRPC connection.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP server on transport until the context is
// cancelled or the peer disconnects, then closes the gRPC connection.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
