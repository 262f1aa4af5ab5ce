package models

import "time"

// Settings is the admin-editable singleton holding the current fee amounts.
// Exactly one row exists (ID 1); the checkout service falls back to static
// defaults when the row is missing or unreadable.
type Settings struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	DeliveryFee string    `json:"delivery_fee" validate:"required"`
	FragileFee  string    `json:"fragile_fee" validate:"required"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SettingsID is the fixed primary key of the singleton row.
const SettingsID uint = 1
