// Package migrations embeds the goose SQL migrations for the content catalog.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
