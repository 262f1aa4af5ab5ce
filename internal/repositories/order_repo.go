package repositories

import (
	"manis/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are never deleted; cancellation is a status update.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
