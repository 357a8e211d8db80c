// Package registrar exposes files embedded into the binary.
package registrar

import "embed"

// Migrations holds the goose SQL migrations of the registrar schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
