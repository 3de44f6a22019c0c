// Package migrations embeds the SQL schema so the API binary and the
// integration suites apply the same files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
