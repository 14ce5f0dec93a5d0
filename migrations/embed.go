// Package migrations embeds the goose SQL migrations the server applies at
// startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
