// Package migrations embeds the MySQL schema so the server can apply it at startup.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
