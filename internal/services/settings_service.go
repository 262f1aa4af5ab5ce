package services

import (
	"fmt"
	"log"

	"manis/internal/models"
	"manis/internal/repositories"

	"github.com/shopspring/decimal"
)

// Static fallbacks used when the settings singleton is missing or
// unreadable. Checkout must never fail because an admin hasn't saved fees.
const (
	DefaultDeliveryFee = "150"
	DefaultFragileFee  = "100"
)

// FeeSettings is the resolved pair of fee amounts the checkout uses.
type FeeSettings struct {
	DeliveryFee decimal.Decimal
	FragileFee  decimal.Decimal
}

// SettingsService reads and updates the admin-editable fee settings
// singleton, applying static fallbacks when the row is unavailable.
type SettingsService struct {
	repo repositories.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// GetFeeSettings resolves the current fee amounts. A missing or unreadable
// settings row falls back to the static defaults with a warning; a
// malformed stored amount falls back field by field.
func (s *SettingsService) GetFeeSettings() FeeSettings {
	fallback := FeeSettings{
		DeliveryFee: decimal.RequireFromString(DefaultDeliveryFee),
		FragileFee:  decimal.RequireFromString(DefaultFragileFee),
	}

	row, err := s.repo.Get()
	if err != nil {
		log.Printf("Warning: fee settings unavailable, using defaults (delivery=%s, fragile=%s): %v", DefaultDeliveryFee, DefaultFragileFee, err)
		return fallback
	}

	resolved := fallback
	if d, err := decimal.NewFromString(row.DeliveryFee); err == nil {
		resolved.DeliveryFee = d
	} else {
		log.Printf("Warning: stored delivery fee %q is malformed, using default %s", row.DeliveryFee, DefaultDeliveryFee)
	}
	if f, err := decimal.NewFromString(row.FragileFee); err == nil {
		resolved.FragileFee = f
	} else {
		log.Printf("Warning: stored fragile fee %q is malformed, using default %s", row.FragileFee, DefaultFragileFee)
	}
	return resolved
}

// GetRaw returns the stored settings row as-is, for the admin dashboard.
func (s *SettingsService) GetRaw() (*models.Settings, error) {
	return s.repo.Get()
}

// UpdateFees validates and persists new fee amounts.
func (s *SettingsService) UpdateFees(deliveryFee, fragileFee string) (*models.Settings, error) {
	if _, err := decimal.NewFromString(deliveryFee); err != nil {
		return nil, fmt.Errorf("invalid delivery fee %q: %w", deliveryFee, err)
	}
	if _, err := decimal.NewFromString(fragileFee); err != nil {
		return nil, fmt.Errorf("invalid fragile fee %q: %w", fragileFee, err)
	}

	settings := &models.Settings{
		ID:          models.SettingsID,
		DeliveryFee: deliveryFee,
		FragileFee:  fragileFee,
	}
	if err := s.repo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
