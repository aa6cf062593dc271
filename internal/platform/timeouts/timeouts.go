// Package timeouts defines timeout constants shared by the pebbles service
// and its clients.
package timeouts

import "time"

// GRPCDial caps the wait for the game service to report healthy.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single MCP tool call to the game service.
const GRPCRequest = 2 * time.Second

// ReadHeader limits how long the websocket gateway waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during shutdown.
const Shutdown = 5 * time.Second

// WebSocketWrite bounds a single reply frame write.
const WebSocketWrite = 5 * time.Second

// WebSocketIdle closes gateway connections that stay silent this long.
const WebSocketIdle = 10 * time.Minute
