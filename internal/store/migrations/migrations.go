// Package migrations embebe las migraciones SQL del esquema para goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
