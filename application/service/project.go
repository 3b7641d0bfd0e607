package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/storage"
	"github.com/foliolabs/folio/domain/task"
	"github.com/foliolabs/folio/domain/taxonomy"
	"github.com/foliolabs/folio/infrastructure/filestore"
)

// Project provides CRUD over portfolio projects. Writes enqueue a
// background index task after commit; indexing never blocks or fails the
// write itself.
type Project struct {
	store      project.Store
	taxonomies taxonomy.Store
	queue      *Queue
	files      filestore.Store
	logger     *slog.Logger
}

// NewProject creates a Project service.
func NewProject(store project.Store, taxonomies taxonomy.Store, queue *Queue, files filestore.Store, logger *slog.Logger) *Project {
	return &Project{
		store:      store,
		taxonomies: taxonomies,
		queue:      queue,
		files:      files,
		logger:     logger,
	}
}

// List returns all projects, newest first, with relations expanded.
func (s *Project) List(ctx context.Context) ([]project.Project, error) {
	return s.store.Find(ctx, storage.WithOrderDesc("created_at"))
}

// Get returns a single project by id.
func (s *Project) Get(ctx context.Context, id int64) (project.Project, error) {
	return s.store.Get(ctx, storage.WithID(id))
}

// Create validates and persists a new project, then enqueues indexing.
func (s *Project) Create(ctx context.Context, p project.Project) (project.Project, error) {
	if err := p.Validate(); err != nil {
		return project.Project{}, err
	}

	if err := s.ensureNames(ctx, p); err != nil {
		return project.Project{}, err
	}

	saved, err := s.store.Save(ctx, p)
	if err != nil {
		return project.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.enqueueIndex(ctx, saved.ID())
	return saved, nil
}

// Update validates and persists changes to an existing project, replacing
// its relation sets, then enqueues reindexing.
func (s *Project) Update(ctx context.Context, p project.Project) (project.Project, error) {
	if err := p.Validate(); err != nil {
		return project.Project{}, err
	}

	// Confirm the project exists before writing.
	existing, err := s.store.Get(ctx, storage.WithID(p.ID()))
	if err != nil {
		return project.Project{}, err
	}

	if err := s.ensureNames(ctx, p); err != nil {
		return project.Project{}, err
	}

	saved, err := s.store.Save(ctx, p)
	if err != nil {
		return project.Project{}, fmt.Errorf("update project: %w", err)
	}

	s.removeDroppedFiles(ctx, existing, saved)
	s.enqueueIndex(ctx, saved.ID())
	return saved, nil
}

// Delete removes a project, its relations, and its attachment files.
// File removal is best-effort; the record is deleted regardless.
func (s *Project) Delete(ctx context.Context, id int64) error {
	p, err := s.store.Get(ctx, storage.WithID(id))
	if err != nil {
		return err
	}

	for _, a := range p.Screenshots() {
		s.deleteFile(ctx, a.FilePath())
	}
	if v := p.Video(); v != nil {
		s.deleteFile(ctx, v.FilePath())
	}

	if err := s.store.Delete(ctx, p); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info("project deleted", slog.Int64("project_id", id))
	return nil
}

// ensureNames find-or-creates the feature and developer terms a project
// references, so taxonomy listings stay complete.
func (s *Project) ensureNames(ctx context.Context, p project.Project) error {
	for _, name := range p.Features() {
		if _, err := s.taxonomies.Ensure(ctx, taxonomy.KindFeature, name); err != nil {
			return fmt.Errorf("ensure feature %q: %w", name, err)
		}
	}
	for _, name := range p.Developers() {
		if _, err := s.taxonomies.Ensure(ctx, taxonomy.KindDeveloper, name); err != nil {
			return fmt.Errorf("ensure developer %q: %w", name, err)
		}
	}
	return nil
}

// enqueueIndex schedules background indexing for a project. The write has
// already committed, so a queue failure is logged, not returned.
func (s *Project) enqueueIndex(ctx context.Context, projectID int64) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueIndex(ctx, projectID, task.PriorityUserInitiated); err != nil {
		s.logger.Error("failed to enqueue index task",
			slog.Int64("project_id", projectID),
			slog.String("error", err.Error()),
		)
	}
}

// removeDroppedFiles deletes files for attachments that an update removed.
func (s *Project) removeDroppedFiles(ctx context.Context, before, after project.Project) {
	kept := make(map[string]bool)
	for _, a := range after.Screenshots() {
		kept[a.FilePath()] = true
	}
	if v := after.Video(); v != nil {
		kept[v.FilePath()] = true
	}

	for _, a := range before.Screenshots() {
		if !kept[a.FilePath()] {
			s.deleteFile(ctx, a.FilePath())
		}
	}
	if v := before.Video(); v != nil && !kept[v.FilePath()] {
		s.deleteFile(ctx, v.FilePath())
	}
}

func (s *Project) deleteFile(ctx context.Context, path string) {
	if s.files == nil || path == "" {
		return
	}
	if err := s.files.Delete(ctx, path); err != nil {
		s.logger.Warn("failed to delete attachment file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
