// Package dto defines the request and response shapes of the v1 API.
package dto

import (
	"fmt"
	"time"

	"github.com/foliolabs/folio/domain/project"
)

// AttachmentResponse represents an attachment in API responses.
type AttachmentResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"fileName"`
	FilePath  string `json:"filePath"`
	FileSize  int64  `json:"fileSize"`
	MimeType  string `json:"mimeType"`
	CreatedAt string `json:"createdAt"`
}

// AttachmentFromDomain converts a domain Attachment to its response shape.
func AttachmentFromDomain(a project.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:        a.ID(),
		FileName:  a.FileName(),
		FilePath:  a.FilePath(),
		FileSize:  a.FileSize(),
		MimeType:  a.MimeType(),
		CreatedAt: a.CreatedAt().UTC().Format(time.RFC3339),
	}
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID                int64                `json:"id"`
	ProjectTitle      string               `json:"projectTitle"`
	ClientName        string               `json:"clientName"`
	ProjectSource     string               `json:"projectSource"`
	ProjectURL        *string              `json:"projectUrl"`
	Category          string               `json:"category"`
	ShortDescription  string               `json:"shortDescription"`
	Platform          string               `json:"platform"`
	Status            string               `json:"status"`
	ProposedBudget    *float64             `json:"proposedBudget"`
	FinalizedBudget   *float64             `json:"finalizedBudget"`
	EstimatedDuration string               `json:"estimatedDuration"`
	DeliveredDuration *string              `json:"deliveredDuration"`
	StartDate         string               `json:"startDate"`
	EndDate           *string              `json:"endDate"`
	Tagline           *string              `json:"tagline"`
	Proposal          *string              `json:"proposal"`
	CreatedAt         string               `json:"createdAt"`
	UpdatedAt         string               `json:"updatedAt"`
	Features          []string             `json:"features"`
	Developers        []string             `json:"developers"`
	Screenshots       []AttachmentResponse `json:"screenshots"`
	Video             *AttachmentResponse  `json:"video"`
}

// ProjectFromDomain converts a domain Project to its response shape.
func ProjectFromDomain(p project.Project) ProjectResponse {
	screenshots := make([]AttachmentResponse, 0, len(p.Screenshots()))
	for _, a := range p.Screenshots() {
		screenshots = append(screenshots, AttachmentFromDomain(a))
	}

	var video *AttachmentResponse
	if v := p.Video(); v != nil {
		resp := AttachmentFromDomain(*v)
		video = &resp
	}

	return ProjectResponse{
		ID:                p.ID(),
		ProjectTitle:      p.Title(),
		ClientName:        p.ClientName(),
		ProjectSource:     p.Source(),
		ProjectURL:        optionalString(p.URL()),
		Category:          p.Category(),
		ShortDescription:  p.ShortDescription(),
		Platform:          p.Platform(),
		Status:            p.Status(),
		ProposedBudget:    p.ProposedBudget(),
		FinalizedBudget:   p.FinalizedBudget(),
		EstimatedDuration: p.EstimatedDuration(),
		DeliveredDuration: optionalString(p.DeliveredDuration()),
		StartDate:         p.StartDate().UTC().Format(time.RFC3339),
		EndDate:           optionalTime(p.EndDate()),
		Tagline:           optionalString(p.Tagline()),
		Proposal:          optionalString(p.Proposal()),
		CreatedAt:         p.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt().UTC().Format(time.RFC3339),
		Features:          p.Features(),
		Developers:        p.Developers(),
		Screenshots:       screenshots,
		Video:             video,
	}
}

// ProjectsFromDomain converts a slice of projects.
func ProjectsFromDomain(projects []project.Project) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		result[i] = ProjectFromDomain(p)
	}
	return result
}

// AttachmentPayload references an uploaded file in project write requests.
// ID is set when keeping an existing attachment.
type AttachmentPayload struct {
	ID       int64  `json:"id,omitempty"`
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

func (a AttachmentPayload) toDomain(kind project.AttachmentKind) project.Attachment {
	return project.NewAttachment(a.ID, kind, a.FileName, a.FilePath, a.FileSize, a.MimeType, time.Time{})
}

// ProjectRequest is the create/update request body.
type ProjectRequest struct {
	ProjectTitle      string              `json:"projectTitle"`
	ClientName        string              `json:"clientName"`
	ProjectSource     string              `json:"projectSource"`
	ProjectURL        string              `json:"projectUrl"`
	Category          string              `json:"category"`
	ShortDescription  string              `json:"shortDescription"`
	Platform          string              `json:"platform"`
	Status            string              `json:"status"`
	ProposedBudget    *float64            `json:"proposedBudget"`
	FinalizedBudget   *float64            `json:"finalizedBudget"`
	EstimatedDuration string              `json:"estimatedDuration"`
	DeliveredDuration string              `json:"deliveredDuration"`
	StartDate         string              `json:"startDate"`
	EndDate           string              `json:"endDate"`
	Tagline           string              `json:"tagline"`
	Proposal          string              `json:"proposal"`
	Features          []string            `json:"features"`
	Developers        []string            `json:"developers"`
	Screenshots       []AttachmentPayload `json:"screenshots"`
	Video             *AttachmentPayload  `json:"video"`
}

// ToDomain converts the request to a domain Project with the given id
// (0 for create).
func (r ProjectRequest) ToDomain(id int64) (project.Project, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return project.Project{}, fmt.Errorf("%w: invalid startDate %q", project.ErrValidation, r.StartDate)
	}

	var endDate *time.Time
	if r.EndDate != "" {
		parsed, err := parseDate(r.EndDate)
		if err != nil {
			return project.Project{}, fmt.Errorf("%w: invalid endDate %q", project.ErrValidation, r.EndDate)
		}
		endDate = &parsed
	}

	screenshots := make([]project.Attachment, 0, len(r.Screenshots))
	for _, a := range r.Screenshots {
		screenshots = append(screenshots, a.toDomain(project.AttachmentScreenshot))
	}

	var video *project.Attachment
	if r.Video != nil {
		v := r.Video.toDomain(project.AttachmentVideo)
		video = &v
	}

	return project.New(project.Params{
		ID:                id,
		Title:             r.ProjectTitle,
		ClientName:        r.ClientName,
		Source:            r.ProjectSource,
		URL:               r.ProjectURL,
		Category:          r.Category,
		ShortDescription:  r.ShortDescription,
		Platform:          r.Platform,
		Status:            r.Status,
		ProposedBudget:    r.ProposedBudget,
		FinalizedBudget:   r.FinalizedBudget,
		EstimatedDuration: r.EstimatedDuration,
		DeliveredDuration: r.DeliveredDuration,
		StartDate:         startDate,
		EndDate:           endDate,
		Tagline:           r.Tagline,
		Proposal:          r.Proposal,
		Features:          r.Features,
		Developers:        r.Developers,
		Screenshots:       screenshots,
		Video:             video,
	}), nil
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
