package repositories

import (
	"fmt"
	"sync"
	"time"

	"manis/internal/models"
)

// MockSettingsRepository is an in-memory implementation of SettingsRepository.
type MockSettingsRepository struct {
	settings *models.Settings
	mu       sync.RWMutex
}

// NewMockSettingsRepository creates a new instance of MockSettingsRepository.
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// Get returns the settings singleton, or an error if none was saved.
func (r *MockSettingsRepository) Get() (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, fmt.Errorf("settings row not found")
	}
	copied := *r.settings
	return &copied, nil
}

// Save stores the settings singleton.
func (r *MockSettingsRepository) Save(settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings.ID = models.SettingsID
	settings.UpdatedAt = time.Now()
	copied := *settings
	r.settings = &copied
	return nil
}
