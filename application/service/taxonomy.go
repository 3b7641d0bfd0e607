package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/foliolabs/folio/domain/taxonomy"
)

// Taxonomy manages the named lists projects draw their categorical fields from.
type Taxonomy struct {
	store  taxonomy.Store
	logger *slog.Logger
}

// NewTaxonomy creates a Taxonomy service.
func NewTaxonomy(store taxonomy.Store, logger *slog.Logger) *Taxonomy {
	return &Taxonomy{store: store, logger: logger}
}

// List returns all terms of a kind, sorted by name ascending.
func (s *Taxonomy) List(ctx context.Context, kind taxonomy.Kind) ([]taxonomy.Term, error) {
	return s.store.Find(ctx, kind)
}

// Create adds a new term. Returns taxonomy.ErrDuplicate when the (kind,
// name) pair already exists.
func (s *Taxonomy) Create(ctx context.Context, kind taxonomy.Kind, name string) (taxonomy.Term, error) {
	term, err := s.store.Save(ctx, taxonomy.NewTerm(0, kind, name, time.Time{}))
	if err != nil {
		return taxonomy.Term{}, err
	}

	s.logger.Info("taxonomy term created",
		slog.String("kind", kind.String()),
		slog.String("name", term.Name()),
	)
	return term, nil
}

// Seed ensures every name in the given lists exists, kind by kind.
// Idempotent: existing terms are left untouched.
func (s *Taxonomy) Seed(ctx context.Context, lists map[taxonomy.Kind][]string) (int, error) {
	created := 0
	for _, kind := range taxonomy.Kinds() {
		names := lists[kind]
		if len(names) == 0 {
			continue
		}

		existing, err := s.store.Find(ctx, kind)
		if err != nil {
			return created, err
		}
		have := make(map[string]bool, len(existing))
		for _, t := range existing {
			have[t.Name()] = true
		}

		for _, name := range names {
			if have[name] {
				continue
			}
			if _, err := s.store.Ensure(ctx, kind, name); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
