package models

import "time"

// Order statuses. Orders are never deleted; cancellation is a status
// transition handled by operations staff.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusDelivering = "delivering"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Batch kinds recorded on an order. A mixed cart is submitted as two
// independent orders, one per batch.
const (
	BatchStandard = "standard"
	BatchInstant  = "instant"
	BatchPreorder = "preorder"
)

// OrderItem represents a single line within an order. Price is the unit
// price captured from the product snapshot at add-to-cart time.
type OrderItem struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	OrderID       string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID     string `json:"product_id" gorm:"type:varchar(36)"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
	CustomMessage string `json:"custom_message,omitempty"`
	IsFragile     bool   `json:"is_fragile"`
}

// Order represents a customer order. All monetary fields are derived
// server-side by the fee calculator; client-supplied totals are discarded.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	Batch         string      `json:"batch"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	// RequestedDeliveryTime is set only for pre-order batches.
	RequestedDeliveryTime *time.Time `json:"requested_delivery_time,omitempty"`

	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	FragileFee  string `json:"fragile_fee"`
	TotalAmount string `json:"total_amount"`

	Status string `json:"status"`

	// NeedsReconciliation flags orders whose line items failed to insert
	// after the order row was written. The customer still sees success;
	// operations staff reconcile manually.
	NeedsReconciliation bool `json:"needs_reconciliation" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
