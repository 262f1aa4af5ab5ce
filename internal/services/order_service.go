package services

import (
	"fmt"

	"manis/internal/models"
	"manis/internal/repositories"
)

// OrderService handles the operations-dashboard side of orders: listing,
// inspection, and status transitions. Order creation lives in the
// CheckoutService, which owns the fee calculation.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus transitions an order to a new status. Orders are never
// deleted; cancellation is the "cancelled" status.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:    true,
		models.OrderStatusConfirmed:  true,
		models.OrderStatusDelivering: true,
		models.OrderStatusDelivered:  true,
		models.OrderStatusCancelled:  true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
