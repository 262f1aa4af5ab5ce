package repositories

import (
	"manis/internal/models"
)

// SettingsRepository defines the interface for the fee-settings singleton.
type SettingsRepository interface {
	Get() (*models.Settings, error)
	Save(settings *models.Settings) error
}
