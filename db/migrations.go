// Package db embeds the SQL schema migrations.
package db

import "embed"

// Migrations holds the numbered up/down migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
