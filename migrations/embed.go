// Package migrations holds the goose SQL migrations of the skrytki schema.
package migrations

import "embed"

// FS contains every migration file, embedded at build time.
//
//go:embed *.sql
var FS embed.FS
