// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidTarget = errors.New("invalid target: expected host, IP or CIDR")
	ErrNoTargets     = errors.New("no valid targets found")

	// Module errors
	ErrInvalidModule     = errors.New("invalid module descriptor")
	ErrModuleNotFound    = errors.New("module not found")
	ErrDuplicateArtifact = errors.New("artifact produced by more than one module")

	// Plan errors
	ErrInvalidSelection = errors.New("invalid module selection")
)
