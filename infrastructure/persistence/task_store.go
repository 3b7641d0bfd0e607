package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/foliolabs/folio/domain/task"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foliolabs/folio/internal/database"
)

// TaskStore implements task.Store using GORM.
type TaskStore struct {
	db     database.Database
	mapper TaskMapper
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db database.Database) TaskStore {
	return TaskStore{db: db}
}

// Save creates a new task or refreshes an existing one.
// Uses dedup_key for conflict resolution so repeated writes to the same
// project collapse into one pending task.
func (s TaskStore) Save(ctx context.Context, t task.Task) (task.Task, error) {
	model := s.mapper.ToModel(t)

	result := s.db.Session(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedup_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority", "updated_at"}),
	}).Create(&model)

	if result.Error != nil {
		return task.Task{}, fmt.Errorf("save task: %w", result.Error)
	}

	return s.mapper.ToDomain(model), nil
}

// Dequeue returns the highest-priority pending task, oldest first within a
// priority. The second return is false when the queue is empty.
func (s TaskStore) Dequeue(ctx context.Context) (task.Task, bool, error) {
	var model TaskModel
	result := s.db.Session(ctx).
		Order("priority DESC, created_at ASC, id ASC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return task.Task{}, false, nil
		}
		return task.Task{}, false, fmt.Errorf("dequeue task: %w", result.Error)
	}
	return s.mapper.ToDomain(model), true, nil
}

// FindPending retrieves pending tasks ordered by priority then age.
func (s TaskStore) FindPending(ctx context.Context) ([]task.Task, error) {
	var models []TaskModel
	result := s.db.Session(ctx).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find pending tasks: %w", result.Error)
	}

	tasks := make([]task.Task, len(models))
	for i, model := range models {
		tasks[i] = s.mapper.ToDomain(model)
	}
	return tasks, nil
}

// CountPending returns the number of pending tasks.
func (s TaskStore) CountPending(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.Session(ctx).Model(&TaskModel{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("count pending tasks: %w", result.Error)
	}
	return count, nil
}

// Delete removes a task from the queue.
func (s TaskStore) Delete(ctx context.Context, t task.Task) error {
	result := s.db.Session(ctx).Delete(&TaskModel{}, t.ID())
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	return nil
}
