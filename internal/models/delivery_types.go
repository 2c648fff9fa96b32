package models

import "time"

// DeliveryFee is the shipping rate for one (city, state) pair. Orders whose
// subtotal reaches MinOrderFreeDelivery ship free; locations with no row
// ship free by default.
type DeliveryFee struct {
	ID                   int64     `json:"id" db:"id"`
	City                 string    `json:"city" db:"city"`
	State                string    `json:"state" db:"state"`
	FeeAmount            float64   `json:"feeAmount" db:"fee_amount"`
	MinOrderFreeDelivery float64   `json:"minOrderFreeDelivery" db:"min_order_free_delivery"`
	EstimatedDays        string    `json:"estimatedDays" db:"estimated_days"`
	IsAvailable          bool      `json:"isAvailable" db:"is_available"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}
