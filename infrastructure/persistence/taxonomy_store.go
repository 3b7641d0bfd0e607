package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foliolabs/folio/domain/storage"
	"github.com/foliolabs/folio/domain/taxonomy"
	"github.com/foliolabs/folio/internal/database"
)

// TaxonomyStore implements taxonomy.Store using GORM.
type TaxonomyStore struct {
	repo database.Repository[taxonomy.Term, TaxonomyModel]
}

// NewTaxonomyStore creates a new TaxonomyStore.
func NewTaxonomyStore(db database.Database) TaxonomyStore {
	return TaxonomyStore{
		repo: database.NewRepository[taxonomy.Term, TaxonomyModel](db, TaxonomyMapper{}, "taxonomy term"),
	}
}

// Find retrieves terms of the given kind, sorted by name ascending.
func (s TaxonomyStore) Find(ctx context.Context, kind taxonomy.Kind, options ...storage.Option) ([]taxonomy.Term, error) {
	opts := append([]storage.Option{taxonomy.WithKind(kind), storage.WithOrderAsc("name")}, options...)
	return s.repo.Find(ctx, opts...)
}

// Save creates a term. Returns taxonomy.ErrDuplicate when a term with the
// same kind and name already exists.
func (s TaxonomyStore) Save(ctx context.Context, term taxonomy.Term) (taxonomy.Term, error) {
	name := strings.TrimSpace(term.Name())
	if name == "" {
		return taxonomy.Term{}, taxonomy.ErrEmptyName
	}

	exists, err := s.repo.Exists(ctx, taxonomy.WithKind(term.Kind()), storage.WithName(name))
	if err != nil {
		return taxonomy.Term{}, err
	}
	if exists {
		return taxonomy.Term{}, fmt.Errorf("%w: %s %q", taxonomy.ErrDuplicate, term.Kind(), name)
	}

	model := TaxonomyModel{Kind: string(term.Kind()), Name: name}
	if result := s.repo.DB(ctx).Create(&model); result.Error != nil {
		return taxonomy.Term{}, fmt.Errorf("save taxonomy term: %w", result.Error)
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// Ensure returns the existing term with the given name, creating it when absent.
func (s TaxonomyStore) Ensure(ctx context.Context, kind taxonomy.Kind, name string) (taxonomy.Term, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return taxonomy.Term{}, taxonomy.ErrEmptyName
	}

	term, err := s.repo.FindOne(ctx, taxonomy.WithKind(kind), storage.WithName(name))
	if err == nil {
		return term, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return taxonomy.Term{}, err
	}

	return s.Save(ctx, taxonomy.NewTerm(0, kind, name, term.CreatedAt()))
}

// Delete removes a term.
func (s TaxonomyStore) Delete(ctx context.Context, term taxonomy.Term) error {
	return s.repo.DeleteBy(ctx, storage.WithID(term.ID()))
}
