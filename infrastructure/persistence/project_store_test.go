package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/storage"
	"github.com/foliolabs/folio/infrastructure/persistence"
	"github.com/foliolabs/folio/internal/database"
	"github.com/foliolabs/folio/internal/testdb"
)

func newProject(title string) project.Project {
	return project.New(project.Params{
		Title:            title,
		ClientName:       "Acme",
		Category:         "E-commerce",
		ShortDescription: "Online shop",
		Platform:         "Shopify",
		Status:           "In Progress",
		StartDate:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Features:         []string{"Cart", "Checkout"},
		Developers:       []string{"Alice"},
	})
}

func TestProjectStore_SaveAndGet(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, newProject("Shop"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID() == 0 {
		t.Fatal("expected an assigned ID")
	}

	got, err := store.Get(ctx, storage.WithID(saved.ID()))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title() != "Shop" {
		t.Errorf("expected title Shop, got %q", got.Title())
	}
	if len(got.Features()) != 2 || got.Features()[0] != "Cart" {
		t.Errorf("unexpected features %v", got.Features())
	}
	if len(got.Developers()) != 1 || got.Developers()[0] != "Alice" {
		t.Errorf("unexpected developers %v", got.Developers())
	}
}

func TestProjectStore_Get_NotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)

	_, err := store.Get(context.Background(), storage.WithID(999))
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectStore_Update_ReplacesRelations(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, newProject("Shop"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	updated := project.New(project.Params{
		ID:               saved.ID(),
		Title:            "Shop v2",
		ClientName:       saved.ClientName(),
		Category:         saved.Category(),
		ShortDescription: saved.ShortDescription(),
		Platform:         saved.Platform(),
		Status:           saved.Status(),
		StartDate:        saved.StartDate(),
		Features:         []string{"Wishlist"},
		Developers:       []string{"Bob", "Carol"},
	})

	got, err := store.Save(ctx, updated)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title() != "Shop v2" {
		t.Errorf("expected title Shop v2, got %q", got.Title())
	}
	if len(got.Features()) != 1 || got.Features()[0] != "Wishlist" {
		t.Errorf("expected features replaced, got %v", got.Features())
	}
	if len(got.Developers()) != 2 {
		t.Errorf("expected 2 developers, got %v", got.Developers())
	}
}

func TestProjectStore_Attachments(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)
	ctx := context.Background()

	p := project.New(project.Params{
		Title:            "Shop",
		ClientName:       "Acme",
		Category:         "E-commerce",
		ShortDescription: "Online shop",
		Platform:         "Shopify",
		StartDate:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Screenshots: []project.Attachment{
			project.NewAttachment(0, project.AttachmentScreenshot, "home.png", "uploads/screenshots/home.png", 1024, "image/png", time.Time{}),
		},
		Video: func() *project.Attachment {
			v := project.NewAttachment(0, project.AttachmentVideo, "demo.mp4", "uploads/videos/demo.mp4", 2048, "video/mp4", time.Time{})
			return &v
		}(),
	})

	saved, err := store.Save(ctx, p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved.Screenshots()) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(saved.Screenshots()))
	}
	if saved.Video() == nil {
		t.Fatal("expected a video attachment")
	}

	// Drop the video, keep the screenshot.
	kept := saved.Screenshots()[0]
	updated := project.New(project.Params{
		ID:               saved.ID(),
		Title:            saved.Title(),
		ClientName:       saved.ClientName(),
		Category:         saved.Category(),
		ShortDescription: saved.ShortDescription(),
		Platform:         saved.Platform(),
		StartDate:        saved.StartDate(),
		Screenshots:      []project.Attachment{kept},
	})

	got, err := store.Save(ctx, updated)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Video() != nil {
		t.Error("expected video to be pruned")
	}
	if len(got.Screenshots()) != 1 || got.Screenshots()[0].ID() != kept.ID() {
		t.Errorf("expected kept screenshot %d, got %v", kept.ID(), got.Screenshots())
	}
}

func TestProjectStore_FindIndexed(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)
	ctx := context.Background()

	a, err := store.Save(ctx, newProject("Indexed"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(ctx, newProject("Unindexed")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.UpdateSearchFields(ctx, a.ID(), "text", search.Vector{0.1, 0.2}); err != nil {
		t.Fatalf("update search fields: %v", err)
	}

	indexed, err := store.FindIndexed(ctx)
	if err != nil {
		t.Fatalf("find indexed: %v", err)
	}
	if len(indexed) != 1 {
		t.Fatalf("expected 1 indexed project, got %d", len(indexed))
	}
	if indexed[0].ID() != a.ID() {
		t.Errorf("expected project %d, got %d", a.ID(), indexed[0].ID())
	}
	if !indexed[0].IsIndexed() {
		t.Error("expected project to carry its embedding")
	}
	if indexed[0].SearchableText() != "text" {
		t.Errorf("unexpected searchable text %q", indexed[0].SearchableText())
	}
}

func TestProjectStore_FindIndexed_ToleratesCorruptEmbedding(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)
	ctx := context.Background()

	healthy, err := store.Save(ctx, newProject("Healthy"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.UpdateSearchFields(ctx, healthy.ID(), "text", search.Vector{0.1, 0.2}); err != nil {
		t.Fatalf("update search fields: %v", err)
	}

	corrupt, err := store.Save(ctx, newProject("Corrupt"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	result := db.Session(ctx).Exec("UPDATE projects SET embedding = ? WHERE id = ?", "not-json", corrupt.ID())
	if result.Error != nil {
		t.Fatalf("write corrupt embedding: %v", result.Error)
	}

	indexed, err := store.FindIndexed(ctx)
	if err != nil {
		t.Fatalf("find indexed: %v", err)
	}
	if len(indexed) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(indexed))
	}
	for _, p := range indexed {
		switch p.ID() {
		case healthy.ID():
			if !p.IsIndexed() {
				t.Error("expected healthy project to keep its embedding")
			}
		case corrupt.ID():
			if p.IsIndexed() {
				t.Error("expected corrupt embedding to degrade to unindexed")
			}
		default:
			t.Errorf("unexpected project %d", p.ID())
		}
	}
}

func TestProjectStore_UpdateSearchFields_NotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)

	err := store.UpdateSearchFields(context.Background(), 999, "text", search.Vector{0.1})
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectStore_Delete(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProjectStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, newProject("Doomed"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Delete(ctx, saved); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = store.Get(ctx, storage.WithID(saved.ID()))
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
