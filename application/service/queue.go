// Package service provides the application services that tie the domain
// model to persistence, providers, and the background queue.
package service

import (
	"context"
	"log/slog"

	"github.com/foliolabs/folio/domain/task"
)

// Queue provides the interface for enqueuing background tasks.
type Queue struct {
	store  task.Store
	logger *slog.Logger
}

// NewQueue creates a new queue service.
func NewQueue(store task.Store, logger *slog.Logger) *Queue {
	return &Queue{
		store:  store,
		logger: logger,
	}
}

// Enqueue adds a task to the queue.
// If a task with the same dedup_key is pending, its priority is refreshed.
func (s *Queue) Enqueue(ctx context.Context, t task.Task) error {
	_, err := s.store.Save(ctx, t)
	if err != nil {
		return err
	}

	s.logger.Info("task enqueued",
		slog.String("dedup_key", t.DedupKey()),
		slog.String("operation", t.Operation().String()),
	)
	return nil
}

// EnqueueIndex enqueues an index task for a project.
func (s *Queue) EnqueueIndex(ctx context.Context, projectID int64, priority task.Priority) error {
	t := task.NewTask(task.OperationIndexProject, priority, map[string]any{
		"project_id": projectID,
	})
	return s.Enqueue(ctx, t)
}

// List returns pending tasks sorted by priority (highest first) then age.
func (s *Queue) List(ctx context.Context) ([]task.Task, error) {
	return s.store.FindPending(ctx)
}

// CountPending returns the number of pending tasks.
func (s *Queue) CountPending(ctx context.Context) (int64, error) {
	return s.store.CountPending(ctx)
}
