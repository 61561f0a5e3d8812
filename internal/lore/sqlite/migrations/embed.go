package migrations

import "embed"

// FS contains embedded SQLite migrations for the lore catalog.
//
//go:embed *.sql
var FS embed.FS
