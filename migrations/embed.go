// Package migrations embeds the SQL schema migrations for every supported driver.
package migrations

import "embed"

// Postgres holds the migrations for PostgreSQL under the "postgres" directory.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the migrations for SQLite under the "sqlite" directory.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
