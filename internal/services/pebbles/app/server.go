// Package server wires the pebbles runtime, its gRPC API and the websocket
// gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	"github.com/louisbranch/pebbles/internal/platform/config"
	"github.com/louisbranch/pebbles/internal/platform/timeouts"
	"github.com/louisbranch/pebbles/internal/random"
	"github.com/louisbranch/pebbles/internal/services/pebbles/api/grpc/interceptors"
	pebblesservice "github.com/louisbranch/pebbles/internal/services/pebbles/api/grpc/pebbles"
	"github.com/louisbranch/pebbles/internal/services/pebbles/api/ws"
	"github.com/louisbranch/pebbles/internal/services/pebbles/domain"
	"github.com/louisbranch/pebbles/internal/services/pebbles/storage"
	pebblessqlite "github.com/louisbranch/pebbles/internal/services/pebbles/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const recordMatchTimeout = 2 * time.Second

type serverEnv struct {
	DBPath     string `env:"PEBBLES_DB_PATH"`
	FirstActor string `env:"PEBBLES_FIRST_ACTOR" envDefault:"random"`
}

func loadServerEnv() (serverEnv, error) {
	return loadServerEnvFrom(env.ToMap(os.Environ()))
}

func loadServerEnvFrom(environ map[string]string) (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnvFrom(&cfg, environ); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "pebbles.db")
	}
	return cfg, nil
}

// parseFirstActor maps PEBBLES_FIRST_ACTOR onto an engine override.
// "random" (or empty) keeps the coin flip.
func parseFirstActor(value string) (domain.Actor, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "random") {
		return domain.ActorUnspecified, nil
	}
	actor, err := domain.ParseActor(value)
	if err != nil {
		return domain.ActorUnspecified, fmt.Errorf("PEBBLES_FIRST_ACTOR: %w", err)
	}
	return actor, nil
}

// Server hosts the pebbles gRPC API, the optional websocket gateway and the
// match history store.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *pebblessqlite.Store

	wsListener net.Listener
	httpServer *http.Server
}

// New creates a configured pebbles server listening on the provided port.
// An empty wsAddr disables the websocket gateway.
func New(port int, wsAddr string) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port), wsAddr)
}

// NewWithAddr creates a configured pebbles server for the provided addresses.
func NewWithAddr(addr, wsAddr string) (*Server, error) {
	srvEnv, err := loadServerEnv()
	if err != nil {
		return nil, err
	}
	firstActor, err := parseFirstActor(srvEnv.FirstActor)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openPebblesStore(srvEnv.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	engine := domain.NewEngine(
		random.NewCryptoSource(),
		domain.WithFirstActor(firstActor),
		domain.WithObserver(matchRecorder(store)),
	)
	apiService := pebblesservice.NewService(engine, store)

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.LocaleInterceptor(),
			interceptors.AuditInterceptor(store, nil),
		),
	)
	healthServer := health.NewServer()
	pebblesv1.RegisterPebblesServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(pebblesv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	srv := &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}

	if wsAddr = strings.TrimSpace(wsAddr); wsAddr != "" {
		wsListener, err := net.Listen("tcp", wsAddr)
		if err != nil {
			srv.Close()
			return nil, fmt.Errorf("listen on %s: %w", wsAddr, err)
		}
		srv.wsListener = wsListener
		srv.httpServer = &http.Server{
			Handler:           ws.NewMux(ws.NewHandler(apiService)),
			ReadHeaderTimeout: timeouts.ReadHeader,
		}
	}

	return srv, nil
}

// matchRecorder stores every finished session in match history.
func matchRecorder(store storage.MatchStore) domain.Observer {
	return domain.ObserverFunc(func(s domain.Session) {
		ctx, cancel := context.WithTimeout(context.Background(), recordMatchTimeout)
		defer cancel()
		if err := store.RecordMatch(ctx, pebblesservice.MatchFromSession(s)); err != nil {
			log.Printf("record match %s: %v", s.ID, err)
		}
	})
}

// Addr returns the gRPC listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// WebSocketAddr returns the websocket gateway address, or "" when disabled.
func (s *Server) WebSocketAddr() string {
	if s == nil || s.wsListener == nil {
		return ""
	}
	return s.wsListener.Addr().String()
}

// Run creates and serves a pebbles server until context cancellation.
func Run(ctx context.Context, port int, wsAddr string) error {
	server, err := New(port, wsAddr)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// RunWithAddr is Run with an explicit gRPC listen address.
func RunWithAddr(ctx context.Context, addr, wsAddr string) error {
	server, err := NewWithAddr(addr, wsAddr)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server, and the websocket gateway when configured,
// until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("pebbles server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	httpErr := make(chan error, 1)
	if s.httpServer != nil {
		log.Printf("pebbles websocket gateway listening at %v", s.wsListener.Addr())
		go func() {
			httpErr <- s.httpServer.Serve(s.wsListener)
		}()
	}

	select {
	case <-ctx.Done():
		s.shutdownHTTP()
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		return grpcServeResult(<-serveErr)
	case err := <-serveErr:
		s.shutdownHTTP()
		return grpcServeResult(err)
	case err := <-httpErr:
		s.grpcServer.GracefulStop()
		<-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve websocket: %w", err)
	}
}

func grpcServeResult(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

func (s *Server) shutdownHTTP() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("shutdown websocket gateway: %v", err)
	}
}

// Close releases pebbles server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.wsListener != nil {
		_ = s.wsListener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close pebbles store: %v", err)
		}
	}
}

func openPebblesStore(path string) (*pebblessqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := pebblessqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pebbles sqlite store: %w", err)
	}
	return store, nil
}
