package migrations

import "embed"

// FS contains embedded SQLite migrations for pebbles storage.
//
//go:embed *.sql
var FS embed.FS
