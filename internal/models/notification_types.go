package models

import "time"

// Notification types
const (
	NotifyNewProduct     = "new_product"
	NotifyNewDeal        = "new_deal"
	NotifyOrderUpdate    = "order_update"
	NotifyOrderShipped   = "order_shipped"
	NotifyOrderDelivered = "order_delivered"
	NotifyLowStock       = "low_stock"
	NotifySystem         = "system"
)

// Notification is an in-app message for one user. The related IDs are
// optional links back to the record that triggered it.
type Notification struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	Type      string `json:"type" db:"notification_type"`
	Title     string `json:"title" db:"title"`
	Message   string `json:"message" db:"message"`
	IsRead    bool   `json:"isRead" db:"is_read"`
	OrderID   *int64 `json:"orderId,omitempty" db:"order_id"`
	ProductID *int64 `json:"productId,omitempty" db:"product_id"`
	DealID    *int64 `json:"dealId,omitempty" db:"deal_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
