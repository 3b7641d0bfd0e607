package search

import "strings"

// Document carries the textual fields of a project that feed the embedding
// model. Empty fields are skipped during composition.
type Document struct {
	title       string
	tagline     string
	description string
	proposal    string
	category    string
	platform    string
	features    []string
	developers  []string
}

// NewDocument creates a Document from project fields.
func NewDocument(title, tagline, description, proposal, category, platform string, features, developers []string) Document {
	f := make([]string, len(features))
	copy(f, features)
	d := make([]string, len(developers))
	copy(d, developers)
	return Document{
		title:       title,
		tagline:     tagline,
		description: description,
		proposal:    proposal,
		category:    category,
		platform:    platform,
		features:    f,
		developers:  d,
	}
}

// ComposeText builds the canonical searchable text for a document.
// Non-empty fields are emitted in a fixed order, each prefixed with a label,
// separated by blank lines. Deterministic and side-effect free.
func ComposeText(doc Document) string {
	var parts []string

	if doc.title != "" {
		parts = append(parts, "Project: "+doc.title)
	}
	if doc.tagline != "" {
		parts = append(parts, "Tagline: "+doc.tagline)
	}
	if doc.description != "" {
		parts = append(parts, "Description: "+doc.description)
	}
	if doc.proposal != "" {
		parts = append(parts, "Proposal: "+doc.proposal)
	}
	if doc.category != "" {
		parts = append(parts, "Category: "+doc.category)
	}
	if doc.platform != "" {
		parts = append(parts, "Platform: "+doc.platform)
	}
	if len(doc.features) > 0 {
		parts = append(parts, "Features: "+strings.Join(doc.features, ", "))
	}
	if len(doc.developers) > 0 {
		parts = append(parts, "Developers: "+strings.Join(doc.developers, ", "))
	}

	return strings.Join(parts, "\n\n")
}
