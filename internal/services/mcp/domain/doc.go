// Package domain translates MCP tool calls into pebbles game commands.
//
// Each tool maps to exactly one PebblesService RPC and returns a structured
// result that MCP clients can render.
package domain
