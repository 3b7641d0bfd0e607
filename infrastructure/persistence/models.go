// Package persistence provides database storage implementations.
package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Float64Slice is a custom type for JSON serialization of []float64 columns.
type Float64Slice []float64

// Scan implements sql.Scanner for reading JSON from the database. A value
// that fails to deserialize scans as nil rather than erroring, so one
// corrupt row degrades to an unindexed record instead of failing the whole
// query; the search path skips nil vectors.
func (f *Float64Slice) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Float64Slice", value)
	}

	if err := json.Unmarshal(data, f); err != nil {
		*f = nil
	}
	return nil
}

// Value implements driver.Valuer for writing JSON to the database.
func (f Float64Slice) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// ProjectModel represents a project row.
type ProjectModel struct {
	ID                int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Title             string       `gorm:"column:title;type:varchar(255);not null"`
	ClientName        string       `gorm:"column:client_name;type:varchar(255);not null"`
	Source            string       `gorm:"column:source;type:varchar(255)"`
	URL               string       `gorm:"column:url;type:varchar(2048)"`
	Category          string       `gorm:"column:category;type:varchar(255);index;not null"`
	ShortDescription  string       `gorm:"column:short_description;type:text;not null"`
	Platform          string       `gorm:"column:platform;type:varchar(255);index;not null"`
	Status            string       `gorm:"column:status;type:varchar(64);index;not null"`
	ProposedBudget    *float64     `gorm:"column:proposed_budget"`
	FinalizedBudget   *float64     `gorm:"column:finalized_budget"`
	EstimatedDuration string       `gorm:"column:estimated_duration;type:varchar(255)"`
	DeliveredDuration string       `gorm:"column:delivered_duration;type:varchar(255)"`
	StartDate         time.Time    `gorm:"column:start_date;not null"`
	EndDate           *time.Time   `gorm:"column:end_date"`
	Tagline           *string      `gorm:"column:tagline;type:varchar(512)"`
	Proposal          *string      `gorm:"column:proposal;type:text"`
	SearchableText    *string      `gorm:"column:searchable_text;type:text"`
	Embedding         Float64Slice `gorm:"column:embedding;type:json"`
	CreatedAt         time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name.
func (ProjectModel) TableName() string {
	return "projects"
}

// ProjectFeatureModel links a project to a feature name.
type ProjectFeatureModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64  `gorm:"column:project_id;uniqueIndex:idx_project_features_name;not null"`
	Name      string `gorm:"column:name;type:varchar(255);uniqueIndex:idx_project_features_name;not null"`
}

// TableName returns the table name.
func (ProjectFeatureModel) TableName() string {
	return "project_features"
}

// ProjectDeveloperModel links a project to a developer name.
type ProjectDeveloperModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64  `gorm:"column:project_id;uniqueIndex:idx_project_developers_name;not null"`
	Name      string `gorm:"column:name;type:varchar(255);uniqueIndex:idx_project_developers_name;not null"`
}

// TableName returns the table name.
func (ProjectDeveloperModel) TableName() string {
	return "project_developers"
}

// AttachmentModel represents a stored media file belonging to a project.
type AttachmentModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64     `gorm:"column:project_id;index;not null"`
	Kind      string    `gorm:"column:kind;type:varchar(32);index;not null"`
	FileName  string    `gorm:"column:file_name;type:varchar(512);not null"`
	FilePath  string    `gorm:"column:file_path;type:varchar(2048);not null"`
	FileSize  int64     `gorm:"column:file_size;not null"`
	MimeType  string    `gorm:"column:mime_type;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name.
func (AttachmentModel) TableName() string {
	return "attachments"
}

// TaxonomyModel represents a taxonomy term row.
type TaxonomyModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Kind      string    `gorm:"column:kind;type:varchar(32);uniqueIndex:idx_taxonomies_kind_name;not null"`
	Name      string    `gorm:"column:name;type:varchar(255);uniqueIndex:idx_taxonomies_kind_name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name.
func (TaxonomyModel) TableName() string {
	return "taxonomies"
}

// TaskModel represents a pending queue task.
type TaskModel struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	DedupKey  string          `gorm:"column:dedup_key;type:varchar(255);uniqueIndex:idx_tasks_dedup_key;not null"`
	Type      string          `gorm:"column:type;type:varchar(255);index;not null"`
	Payload   json.RawMessage `gorm:"column:payload;type:json"`
	Priority  int             `gorm:"column:priority;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name.
func (TaskModel) TableName() string {
	return "tasks"
}
