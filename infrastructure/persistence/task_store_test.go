package persistence_test

import (
	"context"
	"testing"

	"github.com/foliolabs/folio/domain/task"
	"github.com/foliolabs/folio/infrastructure/persistence"
	"github.com/foliolabs/folio/internal/testdb"
)

func TestTaskStore_SaveDeduplicates(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewTaskStore(db)
	ctx := context.Background()

	payload := map[string]any{"project_id": int64(1)}
	if _, err := store.Save(ctx, task.NewTask(task.OperationIndexProject, task.PriorityNormal, payload)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(ctx, task.NewTask(task.OperationIndexProject, task.PriorityUserInitiated, payload)); err != nil {
		t.Fatalf("save duplicate: %v", err)
	}

	count, err := store.CountPending(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 pending task after dedup, got %d", count)
	}

	// The surviving task carries the refreshed priority.
	pending, err := store.FindPending(ctx)
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if pending[0].Priority() != int(task.PriorityUserInitiated) {
		t.Errorf("expected refreshed priority %d, got %d", task.PriorityUserInitiated, pending[0].Priority())
	}
}

func TestTaskStore_DifferentProjectsDoNotCollide(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewTaskStore(db)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		payload := map[string]any{"project_id": id}
		if _, err := store.Save(ctx, task.NewTask(task.OperationIndexProject, task.PriorityNormal, payload)); err != nil {
			t.Fatalf("save project %d: %v", id, err)
		}
	}

	count, err := store.CountPending(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 pending tasks, got %d", count)
	}
}

func TestTaskStore_DequeueOrder(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewTaskStore(db)
	ctx := context.Background()

	low, err := store.Save(ctx, task.NewTask(task.OperationIndexProject, task.PriorityBackground, map[string]any{"project_id": int64(1)}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	high, err := store.Save(ctx, task.NewTask(task.OperationIndexProject, task.PriorityUserInitiated, map[string]any{"project_id": int64(2)}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if !ok {
		t.Fatal("expected a pending task")
	}
	if got.ID() != high.ID() {
		t.Errorf("expected high-priority task %d first, got %d", high.ID(), got.ID())
	}

	if err := store.Delete(ctx, got); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, ok, err = store.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if !ok || got.ID() != low.ID() {
		t.Errorf("expected low-priority task %d next, got ok=%v id=%d", low.ID(), ok, got.ID())
	}
}

func TestTaskStore_Dequeue_Empty(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewTaskStore(db)

	_, ok, err := store.Dequeue(context.Background())
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if ok {
		t.Error("expected empty queue")
	}
}

func TestTaskStore_RoundTripsPayload(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewTaskStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, task.NewTask(task.OperationIndexProject, task.PriorityNormal, map[string]any{"project_id": int64(42)}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.Dequeue(ctx)
	if err != nil || !ok {
		t.Fatalf("dequeue: ok=%v err=%v", ok, err)
	}
	if got.ID() != saved.ID() {
		t.Errorf("expected task %d, got %d", saved.ID(), got.ID())
	}
	if got.ProjectID() != 42 {
		t.Errorf("expected project_id 42 after round trip, got %d", got.ProjectID())
	}
	if got.Operation() != task.OperationIndexProject {
		t.Errorf("unexpected operation %q", got.Operation())
	}
}
