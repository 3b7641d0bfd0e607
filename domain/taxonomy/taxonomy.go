// Package taxonomy defines the named lists a project draws its categorical
// fields from: categories, platforms, statuses, sources, features, and
// developers.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foliolabs/folio/domain/storage"
)

// Taxonomy errors.
var (
	// ErrUnknownKind indicates an unrecognized taxonomy kind.
	ErrUnknownKind = errors.New("unknown taxonomy kind")

	// ErrDuplicate indicates a term with the same name already exists.
	ErrDuplicate = errors.New("taxonomy term already exists")

	// ErrEmptyName indicates an empty term name.
	ErrEmptyName = errors.New("taxonomy term name must not be empty")
)

// Kind identifies one of the taxonomy lists.
type Kind string

// Kind values.
const (
	KindCategory  Kind = "category"
	KindPlatform  Kind = "platform"
	KindStatus    Kind = "status"
	KindSource    Kind = "source"
	KindFeature   Kind = "feature"
	KindDeveloper Kind = "developer"
)

// Kinds returns all taxonomy kinds.
func Kinds() []Kind {
	return []Kind{KindCategory, KindPlatform, KindStatus, KindSource, KindFeature, KindDeveloper}
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// String returns the string representation of the kind.
func (k Kind) String() string { return string(k) }

// Term is a single named entry in a taxonomy list.
type Term struct {
	id        int64
	kind      Kind
	name      string
	createdAt time.Time
}

// NewTerm creates a new Term.
func NewTerm(id int64, kind Kind, name string, createdAt time.Time) Term {
	return Term{id: id, kind: kind, name: name, createdAt: createdAt}
}

// ID returns the term identifier.
func (t Term) ID() int64 { return t.id }

// Kind returns the taxonomy the term belongs to.
func (t Term) Kind() Kind { return t.kind }

// Name returns the term name.
func (t Term) Name() string { return t.name }

// CreatedAt returns the creation timestamp.
func (t Term) CreatedAt() time.Time { return t.createdAt }

// Store persists taxonomy terms.
type Store interface {
	// Find retrieves terms matching the options, sorted by name ascending.
	Find(ctx context.Context, kind Kind, options ...storage.Option) ([]Term, error)

	// Save creates a term. Returns ErrDuplicate when (kind, name) exists.
	Save(ctx context.Context, term Term) (Term, error)

	// Ensure returns the existing term with the given name, creating it
	// first when absent.
	Ensure(ctx context.Context, kind Kind, name string) (Term, error)

	// Delete removes a term.
	Delete(ctx context.Context, term Term) error
}

// WithKind filters by the "kind" column.
func WithKind(kind Kind) storage.Option {
	return storage.WithCondition("kind", string(kind))
}
