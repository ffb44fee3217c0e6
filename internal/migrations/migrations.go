// Package migrations embeds the goose migration scripts for the quiz database.
package migrations

import "embed"

// FS holds the SQL migrations, applied in version order.
//
//go:embed *.sql
var FS embed.FS
