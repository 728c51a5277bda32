// Package database holds the schema migrations shipped with the binaries.
package database

import "embed"

// Migrations contains the versioned Oracle schema files, named
// <version>_<name>.up.sql / .down.sql.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the files.
const MigrationsDir = "migrations"
