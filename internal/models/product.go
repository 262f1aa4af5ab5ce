package models

import "gorm.io/gorm"

// Product represents an item in the storefront catalog (snacks, cakes, flowers).
// Price is stored as a decimal string to avoid floating-point precision loss;
// all money math goes through shopspring/decimal in the services.
type Product struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Price       string `json:"price" validate:"required"`

	// IsFragile marks products that attract the flat per-order fragile
	// surcharge (cakes, flower arrangements).
	IsFragile bool `json:"is_fragile"`

	// RequiresCustomText marks products that need a customer message
	// (e.g. writing on a cake).
	RequiresCustomText bool `json:"requires_custom_text"`

	// AvailableFrom/AvailableUntil bound the daily ordering window as
	// "HH:MM" local time-of-day. Both empty means always available.
	AvailableFrom  string `json:"available_from" validate:"omitempty,len=5"`
	AvailableUntil string `json:"available_until" validate:"omitempty,len=5"`

	// IsAvailable is the admin kill-switch, independent of the time window.
	IsAvailable bool `json:"is_available" gorm:"default:true"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
