package persistence

import (
	"encoding/json"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/domain/search"
	"github.com/foliolabs/folio/domain/task"
	"github.com/foliolabs/folio/domain/taxonomy"
)

// ProjectMapper maps between domain Project and persistence ProjectModel.
// Relations (features, developers, attachments) are attached by the store,
// not the mapper, because they live in separate tables.
type ProjectMapper struct{}

// ToDomain converts a ProjectModel to a domain Project without relations.
func (m ProjectMapper) ToDomain(e ProjectModel) project.Project {
	return m.toDomain(e, nil, nil, nil, nil)
}

func (m ProjectMapper) toDomain(
	e ProjectModel,
	features, developers []string,
	screenshots []project.Attachment,
	video *project.Attachment,
) project.Project {
	return project.New(project.Params{
		ID:                e.ID,
		Title:             e.Title,
		ClientName:        e.ClientName,
		Source:            e.Source,
		URL:               e.URL,
		Category:          e.Category,
		ShortDescription:  e.ShortDescription,
		Platform:          e.Platform,
		Status:            e.Status,
		ProposedBudget:    e.ProposedBudget,
		FinalizedBudget:   e.FinalizedBudget,
		EstimatedDuration: e.EstimatedDuration,
		DeliveredDuration: e.DeliveredDuration,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		Tagline:           stringValue(e.Tagline),
		Proposal:          stringValue(e.Proposal),
		Features:          features,
		Developers:        developers,
		Screenshots:       screenshots,
		Video:             video,
		SearchableText:    stringValue(e.SearchableText),
		Embedding:         search.Vector(e.Embedding),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	})
}

// ToModel converts a domain Project to a ProjectModel.
func (m ProjectMapper) ToModel(p project.Project) ProjectModel {
	return ProjectModel{
		ID:                p.ID(),
		Title:             p.Title(),
		ClientName:        p.ClientName(),
		Source:            p.Source(),
		URL:               p.URL(),
		Category:          p.Category(),
		ShortDescription:  p.ShortDescription(),
		Platform:          p.Platform(),
		Status:            p.Status(),
		ProposedBudget:    p.ProposedBudget(),
		FinalizedBudget:   p.FinalizedBudget(),
		EstimatedDuration: p.EstimatedDuration(),
		DeliveredDuration: p.DeliveredDuration(),
		StartDate:         p.StartDate(),
		EndDate:           p.EndDate(),
		Tagline:           stringPtr(p.Tagline()),
		Proposal:          stringPtr(p.Proposal()),
		SearchableText:    stringPtr(p.SearchableText()),
		Embedding:         Float64Slice(p.Embedding()),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

// AttachmentMapper maps between domain Attachment and AttachmentModel.
type AttachmentMapper struct{}

// ToDomain converts an AttachmentModel to a domain Attachment.
func (AttachmentMapper) ToDomain(e AttachmentModel) project.Attachment {
	return project.NewAttachment(
		e.ID,
		project.AttachmentKind(e.Kind),
		e.FileName,
		e.FilePath,
		e.FileSize,
		e.MimeType,
		e.CreatedAt,
	)
}

// ToModel converts a domain Attachment to an AttachmentModel. The ProjectID
// foreign key is set by the store.
func (AttachmentMapper) ToModel(a project.Attachment) AttachmentModel {
	return AttachmentModel{
		ID:        a.ID(),
		Kind:      string(a.Kind()),
		FileName:  a.FileName(),
		FilePath:  a.FilePath(),
		FileSize:  a.FileSize(),
		MimeType:  a.MimeType(),
		CreatedAt: a.CreatedAt(),
	}
}

// TaxonomyMapper maps between taxonomy.Term and TaxonomyModel.
type TaxonomyMapper struct{}

// ToDomain converts a TaxonomyModel to a taxonomy.Term.
func (TaxonomyMapper) ToDomain(e TaxonomyModel) taxonomy.Term {
	return taxonomy.NewTerm(e.ID, taxonomy.Kind(e.Kind), e.Name, e.CreatedAt)
}

// ToModel converts a taxonomy.Term to a TaxonomyModel.
func (TaxonomyMapper) ToModel(t taxonomy.Term) TaxonomyModel {
	return TaxonomyModel{
		ID:        t.ID(),
		Kind:      string(t.Kind()),
		Name:      t.Name(),
		CreatedAt: t.CreatedAt(),
	}
}

// TaskMapper maps between task.Task and TaskModel.
type TaskMapper struct{}

// ToDomain converts a TaskModel to a task.Task.
func (TaskMapper) ToDomain(e TaskModel) task.Task {
	payload := map[string]any{}
	if len(e.Payload) > 0 {
		// A payload that fails to decode is treated as empty rather than
		// failing the read; the handler rejects tasks without a project id.
		_ = json.Unmarshal(e.Payload, &payload)
	}
	return task.NewTaskWithID(
		e.ID,
		e.DedupKey,
		task.Operation(e.Type),
		e.Priority,
		payload,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a task.Task to a TaskModel.
func (TaskMapper) ToModel(t task.Task) TaskModel {
	payload, _ := json.Marshal(t.Payload())
	return TaskModel{
		ID:        t.ID(),
		DedupKey:  t.DedupKey(),
		Type:      t.Operation().String(),
		Payload:   payload,
		Priority:  t.Priority(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
