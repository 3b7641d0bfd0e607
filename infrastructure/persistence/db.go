package persistence

import (
	"fmt"

	"github.com/foliolabs/folio/internal/database"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&ProjectModel{},
		&ProjectFeatureModel{},
		&ProjectDeveloperModel{},
		&AttachmentModel{},
		&TaxonomyModel{},
		&TaskModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
