package search

import "errors"

// Search error taxonomy. The API layer maps these onto HTTP statuses; the
// orchestrator distinguishes "could not search" from "no matches found".
var (
	// ErrInvalidQuery indicates an empty or whitespace-only query.
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrProviderNotConfigured indicates no embedding provider is configured.
	// This is a deployment problem, not a runtime fault.
	ErrProviderNotConfigured = errors.New("embedding provider not configured")

	// ErrQueryEmbeddingFailed indicates the mandatory query embedding call
	// failed. The search cannot proceed without it.
	ErrQueryEmbeddingFailed = errors.New("failed to embed query")

	// ErrDimensionMismatch indicates two vectors of different lengths were
	// compared. Stored vectors all come from one model, so this signals a
	// corrupted record rather than a zero-similarity pair.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
