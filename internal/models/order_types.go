package models

import (
	"strings"
	"time"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusReceived   = "received"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods
const (
	PaymentCOD     = "cod"
	PaymentGCash   = "gcash"
	PaymentPayMaya = "paymaya"
)

// orderTransitions is the full lifecycle state machine. Received and
// cancelled are terminal; received is only ever set by the customer
// confirming a delivered order.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusReceived:   {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an admin may move an order from one status
// to another. Customer-only moves (cancel from pending, received from
// delivered) are checked separately in the account handlers.
func CanTransition(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the admin-reachable statuses from a given one,
// for the error message when a move is rejected.
func AllowedTransitions(from string) []string {
	return orderTransitions[from]
}

// IsOrderStatus reports whether s is one of the known statuses.
func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// StatusDisplay renders a status for receipts and notifications.
func StatusDisplay(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

// Order snapshots the customer and shipping details at checkout time, so
// later profile edits never rewrite history. Total includes ShippingCost.
type Order struct {
	ID          int64  `json:"id" db:"id"`
	OrderNumber string `json:"orderNumber" db:"order_number"`
	UserID      int64  `json:"userId" db:"user_id"`

	FullName string `json:"fullName" db:"full_name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	Address  string `json:"address" db:"address"`
	City     string `json:"city" db:"city"`
	State    string `json:"state" db:"state"`
	ZipCode  string `json:"zipCode" db:"zip_code"`

	Total         float64 `json:"total" db:"total"`
	ShippingCost  float64 `json:"shippingCost" db:"shipping_cost"`
	Status        string  `json:"status" db:"status"`
	PaymentMethod string  `json:"paymentMethod" db:"payment_method"`

	// Set once the usage reconciliation worker has credited this order's
	// deals, so the count never double-runs.
	DealUsageCounted bool `json:"-" db:"deal_usage_counted"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Subtotal is the merchandise total before shipping.
func (o *Order) Subtotal() float64 {
	return o.Total - o.ShippingCost
}

// OrderItem snapshots the product name and the price actually paid (deal
// discounts already applied) at checkout time.
type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     int64   `json:"orderId" db:"order_id"`
	ProductID   int64   `json:"productId" db:"product_id"`
	ProductName string  `json:"productName" db:"product_name"`
	Price       float64 `json:"price" db:"price"`
	Quantity    int     `json:"quantity" db:"quantity"`
}

// ItemTotal is the line total for one order item.
func (i *OrderItem) ItemTotal() float64 {
	return i.Price * float64(i.Quantity)
}
