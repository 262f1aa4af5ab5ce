package repositories

import (
	"fmt"

	"manis/internal/models"

	"gorm.io/gorm"
)

// GORMSettingsRepository is a GORM implementation of SettingsRepository.
type GORMSettingsRepository struct {
	db *gorm.DB
}

// NewGORMSettingsRepository creates a new instance of GORMSettingsRepository.
func NewGORMSettingsRepository(db *gorm.DB) *GORMSettingsRepository {
	return &GORMSettingsRepository{
		db: db,
	}
}

// Get retrieves the settings singleton row.
func (r *GORMSettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("settings row not found")
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Save upserts the settings singleton row.
func (r *GORMSettingsRepository) Save(settings *models.Settings) error {
	settings.ID = models.SettingsID
	if err := r.db.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
