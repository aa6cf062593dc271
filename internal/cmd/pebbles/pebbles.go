// Package pebbles parses pebbles command flags and starts the game runtime.
package pebbles

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/pebbles/internal/platform/cmd"
	server "github.com/louisbranch/pebbles/internal/services/pebbles/app"
)

// Config holds pebbles command configuration.
type Config struct {
	Port   int    `env:"PEBBLES_PORT" envDefault:"8095"`
	Addr   string `env:"PEBBLES_ADDR"`
	WSAddr string `env:"PEBBLES_WS_ADDR" envDefault:":8096"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The pebbles gRPC server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The pebbles gRPC listen address (overrides -port)")
	fs.StringVar(&cfg.WSAddr, "ws-addr", cfg.WSAddr, "The websocket gateway listen address (empty disables it)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the pebbles game service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePebbles, func(context.Context) error {
		if cfg.Addr != "" {
			return server.RunWithAddr(ctx, cfg.Addr, cfg.WSAddr)
		}
		return server.Run(ctx, cfg.Port, cfg.WSAddr)
	})
}
