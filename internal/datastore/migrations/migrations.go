// Package migrations embeds the SQL files that build the person schema.
package migrations

import "embed"

// FS holds the migration files, applied in lexical filename order.
//
//go:embed *.sql
var FS embed.FS
