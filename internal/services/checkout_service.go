package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"manis/internal/cart"
	"manis/internal/models"
	"manis/internal/repositories"

	"github.com/shopspring/decimal"
)

// OrderEventPublisher publishes order lifecycle events. Satisfied by the
// rabbitmq client; nil disables publishing.
type OrderEventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// DeliveryWindow bounds when a pre-order delivery may be requested: at
// least LeadTime from now, and a time-of-day inside [OpenHour, CloseHour).
type DeliveryWindow struct {
	LeadTime  time.Duration
	OpenHour  int
	CloseHour int
}

// DefaultDeliveryWindow matches store operating hours.
var DefaultDeliveryWindow = DeliveryWindow{
	LeadTime:  30 * time.Minute,
	OpenHour:  10,
	CloseHour: 23,
}

// FeeBreakdown is the authoritative, server-derived pricing of an order.
// Amounts stay exact decimals internally; rounding happens only when
// formatting for persistence.
type FeeBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	FragileFee  decimal.Decimal `json:"fragile_fee"`
	Total       decimal.Decimal `json:"total"`
}

// CheckoutRequest is the order draft submitted by the customer. Any totals
// the client may have computed are absent by design: the fee calculator
// re-derives everything from the raw line items.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=8,max=20"`
	Address       string `json:"address" validate:"required,min=5,max=500"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod transfer"`

	// Batch selects which partition of a mixed cart to submit: "instant"
	// or "preorder". Must be empty for a non-mixed cart.
	Batch string `json:"batch" validate:"omitempty,oneof=instant preorder"`

	// RequestedDeliveryTime (RFC3339) is required when the submitted
	// items include any pre-order line.
	RequestedDeliveryTime string `json:"requested_delivery_time"`
}

// CheckoutService converts a session cart into persisted orders. It is the
// single source of truth for billable amounts.
type CheckoutService struct {
	cartService     *CartService
	settingsService *SettingsService
	orderRepo       repositories.OrderRepository
	productRepo     repositories.ProductRepository
	publisher       OrderEventPublisher
	window          DeliveryWindow
	now             func() time.Time
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	cartService *CartService,
	settingsService *SettingsService,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	publisher OrderEventPublisher,
	window DeliveryWindow,
) *CheckoutService {
	return &CheckoutService{
		cartService:     cartService,
		settingsService: settingsService,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		publisher:       publisher,
		window:          window,
		now:             time.Now,
	}
}

// CalculateFees derives the billable amounts for a set of line items:
// subtotal of snapshot prices, the flat delivery fee, and the flat fragile
// surcharge applied once if any charged item is fragile. Malformed price
// strings contribute zero. An empty item set is rejected before any
// calculation.
func CalculateFees(items []cart.Item, fees FeeSettings) (FeeBreakdown, error) {
	if len(items) == 0 {
		return FeeBreakdown{}, fmt.Errorf("cannot calculate fees for an empty order")
	}

	subtotal := decimal.Zero
	hasFragile := false
	for _, item := range items {
		subtotal = subtotal.Add(cart.LineTotal(item))
		if item.IsFragile {
			hasFragile = true
		}
	}

	fragileFee := decimal.Zero
	if hasFragile {
		fragileFee = fees.FragileFee
	}

	return FeeBreakdown{
		Subtotal:    subtotal,
		DeliveryFee: fees.DeliveryFee,
		FragileFee:  fragileFee,
		Total:       subtotal.Add(fees.DeliveryFee).Add(fragileFee),
	}, nil
}

// ValidateDeliveryTime checks a requested pre-order delivery timestamp:
// it must be at least the lead time after now, and its time-of-day must
// fall inside the operating window regardless of date.
func (s *CheckoutService) ValidateDeliveryTime(requested time.Time) error {
	now := s.now()
	if requested.Before(now.Add(s.window.LeadTime)) {
		return fmt.Errorf("delivery time must be at least %d minutes from now", int(s.window.LeadTime.Minutes()))
	}
	// The window is evaluated in store-local time. RFC3339 timestamps carry
	// whatever offset the client encoded, so without the conversion a 02:00
	// local delivery could be smuggled in as 14:00+12:00.
	hour := requested.In(time.Local).Hour()
	if hour < s.window.OpenHour || hour >= s.window.CloseHour {
		return fmt.Errorf("delivery time must be between %02d:00 and %02d:00", s.window.OpenHour, s.window.CloseHour)
	}
	return nil
}

// Submit checks out the session cart (or one batch of a mixed cart) and
// returns the persisted order. On success the submitted batch's lines are
// removed from the cart; the remaining batch of a mixed cart stays in the
// cart until it is checked out itself.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*models.Order, error) {
	c, err := s.cartService.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("cart is empty, nothing to check out")
	}

	items, batch, err := selectBatch(c, req.Batch)
	if err != nil {
		return nil, err
	}

	var requestedDelivery *time.Time
	if containsPreorder(items) {
		if req.RequestedDeliveryTime == "" {
			return nil, fmt.Errorf("a delivery time is required for pre-order items")
		}
		parsed, err := time.Parse(time.RFC3339, req.RequestedDeliveryTime)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery time %q: %w", req.RequestedDeliveryTime, err)
		}
		if err := s.ValidateDeliveryTime(parsed); err != nil {
			return nil, err
		}
		requestedDelivery = &parsed
	}

	// Every referenced product must still exist; a vanished product
	// rejects the whole submission before anything is written.
	for _, item := range items {
		if _, err := s.productRepo.GetByID(item.Product.ID); err != nil {
			return nil, fmt.Errorf("product %s is no longer available: %w", item.Product.Name, err)
		}
		if _, ok := cart.ParsePrice(item.Product.Price); !ok {
			log.Printf("Warning: order line %s has malformed price %q, charging 0", item.Identity, item.Product.Price)
		}
	}

	fees, err := CalculateFees(items, s.settingsService.GetFeeSettings())
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:          req.CustomerName,
		CustomerPhone:         req.CustomerPhone,
		Address:               req.Address,
		PaymentMethod:         req.PaymentMethod,
		Batch:                 batch,
		Items:                 toOrderItems(items),
		RequestedDeliveryTime: requestedDelivery,
		Subtotal:              fees.Subtotal.StringFixed(2),
		DeliveryFee:           fees.DeliveryFee.StringFixed(2),
		FragileFee:            fees.FragileFee.StringFixed(2),
		TotalAmount:           fees.Total.StringFixed(2),
		Status:                models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)

	// Clear only the submitted batch. The other partition of a mixed cart
	// must survive until its own checkout succeeds.
	if err := s.clearSubmitted(ctx, sessionID, c, items); err != nil {
		log.Printf("Warning: order %s created but cart cleanup failed for session %s: %v", order.ID, sessionID, err)
	}

	return order, nil
}

// selectBatch picks the line items to charge. A mixed cart must name one
// partition; the partition is always submitted in full. Naming a batch on
// a homogeneous cart is fine as long as the partition is non-empty, which
// lets the second step of the split flow address its remaining batch after
// the first one already left the cart.
func selectBatch(c *cart.Cart, batch string) ([]cart.Item, string, error) {
	if batch == "" {
		if cart.HasMixedAvailability(c.Items) {
			return nil, "", fmt.Errorf("cart contains both instant and pre-order items, choose a batch to check out")
		}
		return c.Items, models.BatchStandard, nil
	}

	split := cart.Split(c.Items)
	switch batch {
	case models.BatchInstant:
		if len(split.Instant.Items) == 0 {
			return nil, "", fmt.Errorf("cart has no instant items to check out")
		}
		return split.Instant.Items, models.BatchInstant, nil
	case models.BatchPreorder:
		if len(split.Preorder.Items) == 0 {
			return nil, "", fmt.Errorf("cart has no pre-order items to check out")
		}
		return split.Preorder.Items, models.BatchPreorder, nil
	default:
		return nil, "", fmt.Errorf("unknown batch %q", batch)
	}
}

func containsPreorder(items []cart.Item) bool {
	for _, item := range items {
		if item.IsPreorder {
			return true
		}
	}
	return false
}

func toOrderItems(items []cart.Item) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:     item.Product.ID,
			ProductName:   item.Product.Name,
			Quantity:      item.Quantity,
			Price:         item.Product.Price,
			CustomMessage: item.CustomMessage,
			IsFragile:     item.IsFragile,
		})
	}
	return orderItems
}

// clearSubmitted removes exactly the charged lines from the cart and
// persists the result, deleting the stored snapshot when nothing remains.
func (s *CheckoutService) clearSubmitted(ctx context.Context, sessionID string, c *cart.Cart, submitted []cart.Item) error {
	for _, item := range submitted {
		c.RemoveItem(item.Identity)
	}
	if c.IsEmpty() {
		return s.cartService.Clear(ctx, sessionID)
	}
	return s.cartService.save(ctx, sessionID, c)
}

// publishOrderCreated emits an order.created event with the server-derived
// totals. Publishing failures are logged, never surfaced to the customer.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("Order event publisher is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"batch":   order.Batch,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.ID)
	}
}

// SetClock overrides the service's time source. Used by tests.
func (s *CheckoutService) SetClock(now func() time.Time) {
	s.now = now
}
