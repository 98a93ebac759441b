// Package migrations embeds the goose schema migrations so the server can
// bring the database up to date at startup without external tooling.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
