// Package discovery centralizes the local address conventions of the pebbles
// processes.
package discovery

import (
	"net"
	"strconv"
	"strings"
)

const (
	// ServicePebbles is the game service identity.
	ServicePebbles = "pebbles"
	// ServiceMCP is the MCP bridge identity.
	ServiceMCP = "mcp"
)

// DefaultHost is the host used when no explicit address is configured.
const DefaultHost = "localhost"

var grpcPorts = map[string]int{
	ServicePebbles: 8095,
}

var httpPorts = map[string]int{
	ServicePebbles: 8096,
	ServiceMCP:     8097,
}

// GRPCPort returns the conventional gRPC port for a service, or 0.
func GRPCPort(service string) int {
	return grpcPorts[strings.TrimSpace(service)]
}

// DefaultGRPCAddr returns the conventional gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(GRPCPort(service))
}

// DefaultHTTPAddr returns the conventional HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(httpPorts[strings.TrimSpace(service)])
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

func defaultAddr(port int) string {
	if port <= 0 {
		return ""
	}
	return net.JoinHostPort(DefaultHost, strconv.Itoa(port))
}
