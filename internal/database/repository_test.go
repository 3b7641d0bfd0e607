package database

import (
	"context"
	"errors"
	"testing"

	"github.com/foliolabs/folio/domain/storage"
)

type noteModel struct {
	ID       int64 `gorm:"primaryKey"`
	Title    string
	Archived bool
}

func (noteModel) TableName() string { return "notes" }

type note struct {
	ID       int64
	Title    string
	Archived bool
}

type noteMapper struct{}

func (noteMapper) ToDomain(m noteModel) note {
	return note{ID: m.ID, Title: m.Title, Archived: m.Archived}
}

func (noteMapper) ToModel(n note) noteModel {
	return noteModel{ID: n.ID, Title: n.Title, Archived: n.Archived}
}

func newNoteRepository(t *testing.T) (Repository[note, noteModel], Database) {
	t.Helper()
	ctx := context.Background()
	db, err := NewDatabase(ctx, "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.GORM().AutoMigrate(&noteModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewRepository[note, noteModel](db, noteMapper{}, "note")

	seed := []noteModel{
		{Title: "alpha", Archived: false},
		{Title: "bravo", Archived: true},
		{Title: "charlie", Archived: false},
	}
	if err := db.Session(ctx).Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo, db
}

func TestRepository_Find(t *testing.T) {
	repo, _ := newNoteRepository(t)
	ctx := context.Background()

	all, err := repo.Find(ctx, storage.WithOrderAsc("title"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %v, want 3", len(all))
	}
	if all[0].Title != "alpha" || all[2].Title != "charlie" {
		t.Errorf("unexpected order: %v", all)
	}

	active, err := repo.Find(ctx, storage.WithCondition("archived", false))
	if err != nil {
		t.Fatalf("Find filtered: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("len = %v, want 2", len(active))
	}
}

func TestRepository_Find_Pagination(t *testing.T) {
	repo, _ := newNoteRepository(t)

	page, err := repo.Find(context.Background(),
		storage.WithOrderAsc("title"),
		storage.WithLimit(1),
		storage.WithOffset(1),
	)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("len = %v, want 1", len(page))
	}
	if page[0].Title != "bravo" {
		t.Errorf("title = %q, want bravo", page[0].Title)
	}
}

func TestRepository_FindOne(t *testing.T) {
	repo, _ := newNoteRepository(t)
	ctx := context.Background()

	got, err := repo.FindOne(ctx, storage.WithCondition("title", "bravo"))
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if !got.Archived {
		t.Error("expected the archived note")
	}

	_, err = repo.FindOne(ctx, storage.WithCondition("title", "delta"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ExistsAndCount(t *testing.T) {
	repo, _ := newNoteRepository(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, storage.WithCondition("title", "alpha"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("expected alpha to exist")
	}

	exists, err = repo.Exists(ctx, storage.WithCondition("title", "delta"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("delta should not exist")
	}

	count, err := repo.Count(ctx, storage.WithCondition("archived", false))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %v, want 2", count)
	}
}

func TestRepository_DeleteBy(t *testing.T) {
	repo, _ := newNoteRepository(t)
	ctx := context.Background()

	if err := repo.DeleteBy(ctx, storage.WithCondition("archived", true)); err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %v, want 2 after delete", count)
	}
}
