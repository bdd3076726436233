// Package migrations embeds the forward-only SQL schema migrations that are
// applied at startup, ordered by their numeric filename prefix.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
