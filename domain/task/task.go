// Package task provides task queue domain types for background indexing work.
package task

import (
	"context"
	"fmt"
	"maps"
	"time"
)

// Priority represents task queue priority levels.
type Priority int

// Priority values.
const (
	PriorityBackground    Priority = 1000
	PriorityNormal        Priority = 2000
	PriorityUserInitiated Priority = 5000
)

// Operation represents the type of task operation.
type Operation string

// Operation values for the task queue system.
const (
	// OperationIndexProject recomputes one project's searchable text and
	// embedding after a create or update.
	OperationIndexProject Operation = "folio.project.index"

	// OperationReindexAll walks every project and reindexes each one.
	OperationReindexAll Operation = "folio.project.reindex_all"
)

// String returns the string representation of the operation.
func (o Operation) String() string { return string(o) }

// Task represents an item in the queue waiting to be processed.
// Existence implies pending; completed and failed tasks are removed.
type Task struct {
	id        int64
	dedupKey  string
	operation Operation
	priority  int
	payload   map[string]any
	createdAt time.Time
	updatedAt time.Time
}

// NewTask creates a new Task with the given operation, priority, and payload.
// The dedup key is derived from the operation and payload so repeated writes
// to the same project collapse into one pending index task.
func NewTask(operation Operation, priority Priority, payload map[string]any) Task {
	p := copyPayload(payload)
	return Task{
		dedupKey:  dedupKey(operation, p),
		operation: operation,
		priority:  int(priority),
		payload:   p,
	}
}

// NewTaskWithID creates a Task with all fields (used by the store).
func NewTaskWithID(id int64, key string, operation Operation, priority int, payload map[string]any, createdAt, updatedAt time.Time) Task {
	return Task{
		id:        id,
		dedupKey:  key,
		operation: operation,
		priority:  priority,
		payload:   copyPayload(payload),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the task ID.
func (t Task) ID() int64 { return t.id }

// DedupKey returns the deduplication key.
func (t Task) DedupKey() string { return t.dedupKey }

// Operation returns the task operation.
func (t Task) Operation() Operation { return t.operation }

// Priority returns the task priority.
func (t Task) Priority() int { return t.priority }

// Payload returns a copy of the task payload.
func (t Task) Payload() map[string]any { return copyPayload(t.payload) }

// CreatedAt returns when the task was created.
func (t Task) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the task was last updated.
func (t Task) UpdatedAt() time.Time { return t.updatedAt }

// ProjectID extracts the project_id payload value, or 0 when absent.
func (t Task) ProjectID() int64 {
	val, ok := t.payload["project_id"]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		// JSON round-trips integers as float64.
		return int64(v)
	default:
		return 0
	}
}

// Store persists pending tasks.
type Store interface {
	// Save creates the task, or refreshes priority when a task with the
	// same dedup key is already pending.
	Save(ctx context.Context, t Task) (Task, error)

	// Dequeue returns the highest-priority pending task, oldest first
	// within a priority. The second return is false when the queue is empty.
	Dequeue(ctx context.Context) (Task, bool, error)

	// FindPending returns pending tasks ordered by priority then age.
	FindPending(ctx context.Context) ([]Task, error)

	// CountPending returns the number of pending tasks.
	CountPending(ctx context.Context) (int64, error)

	// Delete removes a task from the queue.
	Delete(ctx context.Context, t Task) error
}

// dedupKey builds "{operation}:{project_id}" so each project has at most one
// pending task per operation.
func dedupKey(operation Operation, payload map[string]any) string {
	if id, ok := payload["project_id"]; ok {
		return fmt.Sprintf("%s:%v", operation, id)
	}
	return string(operation)
}

func copyPayload(payload map[string]any) map[string]any {
	if payload == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(payload))
	maps.Copy(result, payload)
	return result
}
