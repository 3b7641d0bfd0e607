package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/storage"
	"github.com/foliolabs/folio/internal/database"
	"gorm.io/gorm"
)

// ProjectStore implements project.Store using GORM.
type ProjectStore struct {
	db          database.Database
	mapper      ProjectMapper
	attachments AttachmentMapper
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(db database.Database) ProjectStore {
	return ProjectStore{db: db}
}

// Save creates or updates a project, reconciling feature, developer, and
// attachment relations inside a single transaction.
func (s ProjectStore) Save(ctx context.Context, p project.Project) (project.Project, error) {
	model := s.mapper.ToModel(p)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if model.ID == 0 {
			if result := tx.Create(&model); result.Error != nil {
				return fmt.Errorf("create project: %w", result.Error)
			}
		} else {
			if result := tx.Save(&model); result.Error != nil {
				return fmt.Errorf("update project: %w", result.Error)
			}
		}

		if err := s.replaceNames(tx, model.ID, p.Features(), &ProjectFeatureModel{}); err != nil {
			return err
		}
		if err := s.replaceNames(tx, model.ID, p.Developers(), &ProjectDeveloperModel{}); err != nil {
			return err
		}

		return s.reconcileAttachments(tx, model.ID, p)
	})
	if err != nil {
		return project.Project{}, err
	}

	return s.Get(ctx, storage.WithID(model.ID))
}

// replaceNames rewrites a project's name join rows (features or developers).
func (s ProjectStore) replaceNames(tx *gorm.DB, projectID int64, names []string, model any) error {
	if result := tx.Where("project_id = ?", projectID).Delete(model); result.Error != nil {
		return fmt.Errorf("clear project names: %w", result.Error)
	}
	for _, name := range names {
		var err error
		switch model.(type) {
		case *ProjectFeatureModel:
			err = tx.Create(&ProjectFeatureModel{ProjectID: projectID, Name: name}).Error
		case *ProjectDeveloperModel:
			err = tx.Create(&ProjectDeveloperModel{ProjectID: projectID, Name: name}).Error
		}
		if err != nil {
			return fmt.Errorf("save project name: %w", err)
		}
	}
	return nil
}

// reconcileAttachments keeps existing attachments referenced by the project,
// creates the new ones, and deletes the rest.
func (s ProjectStore) reconcileAttachments(tx *gorm.DB, projectID int64, p project.Project) error {
	keep := make([]int64, 0)
	pending := make([]AttachmentModel, 0)

	add := func(a project.Attachment) {
		if a.ID() != 0 {
			keep = append(keep, a.ID())
			return
		}
		model := s.attachments.ToModel(a)
		model.ProjectID = projectID
		pending = append(pending, model)
	}

	for _, sc := range p.Screenshots() {
		add(sc)
	}
	if v := p.Video(); v != nil {
		add(*v)
	}

	del := tx.Where("project_id = ?", projectID)
	if len(keep) > 0 {
		del = del.Where("id NOT IN ?", keep)
	}
	if result := del.Delete(&AttachmentModel{}); result.Error != nil {
		return fmt.Errorf("prune attachments: %w", result.Error)
	}

	for i := range pending {
		if result := tx.Create(&pending[i]); result.Error != nil {
			return fmt.Errorf("save attachment: %w", result.Error)
		}
	}
	return nil
}

// Get retrieves a single project matching the options, with relations loaded.
func (s ProjectStore) Get(ctx context.Context, options ...storage.Option) (project.Project, error) {
	var model ProjectModel
	db := database.ApplyOptions(s.db.Session(ctx), options...)
	result := db.First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return project.Project{}, fmt.Errorf("%w: project", database.ErrNotFound)
		}
		return project.Project{}, fmt.Errorf("get project: %w", result.Error)
	}

	projects, err := s.hydrate(ctx, []ProjectModel{model})
	if err != nil {
		return project.Project{}, err
	}
	return projects[0], nil
}

// Find retrieves projects matching the options, with relations loaded.
func (s ProjectStore) Find(ctx context.Context, options ...storage.Option) ([]project.Project, error) {
	var models []ProjectModel
	db := database.ApplyOptions(s.db.Session(ctx).Model(&ProjectModel{}), options...)
	if result := db.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("find projects: %w", result.Error)
	}
	return s.hydrate(ctx, models)
}

// FindIndexed retrieves all projects whose embedding is non-null, ordered by id.
func (s ProjectStore) FindIndexed(ctx context.Context) ([]project.Project, error) {
	return s.Find(ctx, storage.WithNotNull("embedding"), storage.WithOrderAsc("id"))
}

// UpdateSearchFields persists the searchable text and embedding for a project.
func (s ProjectStore) UpdateSearchFields(ctx context.Context, id int64, searchableText string, embedding search.Vector) error {
	updates := map[string]any{
		"searchable_text": stringPtr(searchableText),
		"embedding":       Float64Slice(embedding),
	}
	result := s.db.Session(ctx).Model(&ProjectModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update search fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: project id %d", database.ErrNotFound, id)
	}
	return nil
}

// Delete removes a project and its relations.
func (s ProjectStore) Delete(ctx context.Context, p project.Project) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for _, model := range []any{&ProjectFeatureModel{}, &ProjectDeveloperModel{}, &AttachmentModel{}} {
			if result := tx.Where("project_id = ?", p.ID()).Delete(model); result.Error != nil {
				return fmt.Errorf("delete project relations: %w", result.Error)
			}
		}
		if result := tx.Delete(&ProjectModel{}, p.ID()); result.Error != nil {
			return fmt.Errorf("delete project: %w", result.Error)
		}
		return nil
	})
}

// hydrate attaches features, developers, and attachments to project rows
// using batched IN queries.
func (s ProjectStore) hydrate(ctx context.Context, models []ProjectModel) ([]project.Project, error) {
	if len(models) == 0 {
		return []project.Project{}, nil
	}

	ids := make([]int64, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}

	var featureRows []ProjectFeatureModel
	if err := s.db.Session(ctx).Where("project_id IN ?", ids).Order("id ASC").Find(&featureRows).Error; err != nil {
		return nil, fmt.Errorf("load project features: %w", err)
	}
	features := make(map[int64][]string)
	for _, row := range featureRows {
		features[row.ProjectID] = append(features[row.ProjectID], row.Name)
	}

	var developerRows []ProjectDeveloperModel
	if err := s.db.Session(ctx).Where("project_id IN ?", ids).Order("id ASC").Find(&developerRows).Error; err != nil {
		return nil, fmt.Errorf("load project developers: %w", err)
	}
	developers := make(map[int64][]string)
	for _, row := range developerRows {
		developers[row.ProjectID] = append(developers[row.ProjectID], row.Name)
	}

	var attachmentRows []AttachmentModel
	if err := s.db.Session(ctx).Where("project_id IN ?", ids).Order("id ASC").Find(&attachmentRows).Error; err != nil {
		return nil, fmt.Errorf("load project attachments: %w", err)
	}
	screenshots := make(map[int64][]project.Attachment)
	videos := make(map[int64]*project.Attachment)
	for _, row := range attachmentRows {
		a := s.attachments.ToDomain(row)
		if a.Kind() == project.AttachmentVideo {
			videos[row.ProjectID] = &a
			continue
		}
		screenshots[row.ProjectID] = append(screenshots[row.ProjectID], a)
	}

	projects := make([]project.Project, len(models))
	for i, m := range models {
		projects[i] = s.mapper.toDomain(m, features[m.ID], developers[m.ID], screenshots[m.ID], videos[m.ID])
	}
	return projects, nil
}
