package dto

import (
	"time"

	"github.com/foliolabs/folio/domain/taxonomy"
)

// TermResponse represents a taxonomy term in API responses.
type TermResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// TermFromDomain converts a taxonomy.Term to its response shape.
func TermFromDomain(t taxonomy.Term) TermResponse {
	return TermResponse{
		ID:        t.ID(),
		Name:      t.Name(),
		CreatedAt: t.CreatedAt().UTC().Format(time.RFC3339),
	}
}

// TermsFromDomain converts a slice of terms.
func TermsFromDomain(terms []taxonomy.Term) []TermResponse {
	result := make([]TermResponse, len(terms))
	for i, t := range terms {
		result[i] = TermFromDomain(t)
	}
	return result
}

// CreateTermRequest is the create-term request body.
type CreateTermRequest struct {
	Name string `json:"name"`
}
