// Package project defines the portfolio project aggregate: the engagement
// record itself, its taxonomy-valued fields, attachments, and store contract.
package project

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foliolabs/folio/domain/search"
)

// ErrValidation indicates a project failed field validation.
var ErrValidation = errors.New("project validation failed")

// Project represents a freelance engagement in the portfolio.
// The search fields (searchable text and embedding) trail the core fields:
// they are populated best-effort after create or update and may be absent.
type Project struct {
	id                int64
	title             string
	clientName        string
	source            string
	url               string
	category          string
	shortDescription  string
	platform          string
	status            string
	proposedBudget    *float64
	finalizedBudget   *float64
	estimatedDuration string
	deliveredDuration string
	startDate         time.Time
	endDate           *time.Time
	tagline           string
	proposal          string

	features    []string
	developers  []string
	screenshots []Attachment
	video       *Attachment

	searchableText string
	embedding      search.Vector

	createdAt time.Time
	updatedAt time.Time
}

// Params holds the fields needed to construct a Project.
type Params struct {
	ID                int64
	Title             string
	ClientName        string
	Source            string
	URL               string
	Category          string
	ShortDescription  string
	Platform          string
	Status            string
	ProposedBudget    *float64
	FinalizedBudget   *float64
	EstimatedDuration string
	DeliveredDuration string
	StartDate         time.Time
	EndDate           *time.Time
	Tagline           string
	Proposal          string
	Features          []string
	Developers        []string
	Screenshots       []Attachment
	Video             *Attachment
	SearchableText    string
	Embedding         search.Vector
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// New creates a Project from params. Status defaults to "Pending".
func New(p Params) Project {
	status := p.Status
	if status == "" {
		status = "Pending"
	}
	features := make([]string, len(p.Features))
	copy(features, p.Features)
	developers := make([]string, len(p.Developers))
	copy(developers, p.Developers)
	screenshots := make([]Attachment, len(p.Screenshots))
	copy(screenshots, p.Screenshots)

	return Project{
		id:                p.ID,
		title:             p.Title,
		clientName:        p.ClientName,
		source:            p.Source,
		url:               p.URL,
		category:          p.Category,
		shortDescription:  p.ShortDescription,
		platform:          p.Platform,
		status:            status,
		proposedBudget:    p.ProposedBudget,
		finalizedBudget:   p.FinalizedBudget,
		estimatedDuration: p.EstimatedDuration,
		deliveredDuration: p.DeliveredDuration,
		startDate:         p.StartDate,
		endDate:           p.EndDate,
		tagline:           p.Tagline,
		proposal:          p.Proposal,
		features:          features,
		developers:        developers,
		screenshots:       screenshots,
		video:             p.Video,
		searchableText:    p.SearchableText,
		embedding:         p.Embedding,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}
}

// ID returns the project identifier (0 before first save).
func (p Project) ID() int64 { return p.id }

// Title returns the project title.
func (p Project) Title() string { return p.title }

// ClientName returns the client's name.
func (p Project) ClientName() string { return p.clientName }

// Source returns where the engagement came from (e.g. Upwork).
func (p Project) Source() string { return p.source }

// URL returns the live project URL, if any.
func (p Project) URL() string { return p.url }

// Category returns the project category.
func (p Project) Category() string { return p.category }

// ShortDescription returns the one-paragraph description.
func (p Project) ShortDescription() string { return p.shortDescription }

// Platform returns the delivery platform.
func (p Project) Platform() string { return p.platform }

// Status returns the engagement status.
func (p Project) Status() string { return p.status }

// ProposedBudget returns the proposed budget, or nil.
func (p Project) ProposedBudget() *float64 { return p.proposedBudget }

// FinalizedBudget returns the finalized budget, or nil.
func (p Project) FinalizedBudget() *float64 { return p.finalizedBudget }

// EstimatedDuration returns the estimated duration.
func (p Project) EstimatedDuration() string { return p.estimatedDuration }

// DeliveredDuration returns the delivered duration, if recorded.
func (p Project) DeliveredDuration() string { return p.deliveredDuration }

// StartDate returns the engagement start date.
func (p Project) StartDate() time.Time { return p.startDate }

// EndDate returns the engagement end date, or nil while ongoing.
func (p Project) EndDate() *time.Time { return p.endDate }

// Tagline returns the short tagline, if any.
func (p Project) Tagline() string { return p.tagline }

// Proposal returns the proposal text, if any.
func (p Project) Proposal() string { return p.proposal }

// Features returns the feature names (copy).
func (p Project) Features() []string {
	result := make([]string, len(p.features))
	copy(result, p.features)
	return result
}

// Developers returns the developer names (copy).
func (p Project) Developers() []string {
	result := make([]string, len(p.developers))
	copy(result, p.developers)
	return result
}

// Screenshots returns the screenshot attachments (copy).
func (p Project) Screenshots() []Attachment {
	result := make([]Attachment, len(p.screenshots))
	copy(result, p.screenshots)
	return result
}

// Video returns the video attachment, or nil.
func (p Project) Video() *Attachment { return p.video }

// SearchableText returns the composed searchable text, empty when unindexed.
func (p Project) SearchableText() string { return p.searchableText }

// Embedding returns the stored embedding vector, nil when unindexed.
func (p Project) Embedding() search.Vector {
	if p.embedding == nil {
		return nil
	}
	result := make(search.Vector, len(p.embedding))
	copy(result, p.embedding)
	return result
}

// IsIndexed returns true if the project carries an embedding.
func (p Project) IsIndexed() bool { return len(p.embedding) > 0 }

// CreatedAt returns the creation timestamp.
func (p Project) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last update timestamp.
func (p Project) UpdatedAt() time.Time { return p.updatedAt }

// Budget returns the budget shown to clients: the finalized budget when set,
// otherwise the proposed budget, otherwise nil.
func (p Project) Budget() *float64 {
	if p.finalizedBudget != nil {
		return p.finalizedBudget
	}
	return p.proposedBudget
}

// Document returns the search document built from this project's fields.
func (p Project) Document() search.Document {
	return search.NewDocument(
		p.title, p.tagline, p.shortDescription, p.proposal,
		p.category, p.platform, p.features, p.developers,
	)
}

// Validate checks the required fields.
func (p Project) Validate() error {
	var missing []string
	if strings.TrimSpace(p.title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.clientName) == "" {
		missing = append(missing, "client_name")
	}
	if strings.TrimSpace(p.shortDescription) == "" {
		missing = append(missing, "short_description")
	}
	if strings.TrimSpace(p.category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(p.platform) == "" {
		missing = append(missing, "platform")
	}
	if p.startDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
