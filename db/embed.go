// Package db carries the SQL schema migrations compiled into the binary.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
