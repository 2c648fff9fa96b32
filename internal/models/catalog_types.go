package models

import "time"

// Category groups products (Processors, Graphics Cards, Memory, ...).
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Product is a catalog item. Price is the list price; the price a customer
// actually pays is computed against the live deal at read time and is never
// written back into this row.
type Product struct {
	ID          int64    `json:"id" db:"id"`
	CategoryID  int64    `json:"categoryId" db:"category_id"`
	Name        string   `json:"name" db:"name"`
	Slug        string   `json:"slug" db:"slug"`
	Description string   `json:"description" db:"description"`
	Price       float64  `json:"price" db:"price"`
	OldPrice    *float64 `json:"oldPrice,omitempty" db:"old_price"`
	ImageURL    *string  `json:"imageUrl,omitempty" db:"image_url"`
	Stock       int      `json:"stock" db:"stock"`
	SKU         *string  `json:"sku,omitempty" db:"sku"`
	IsActive    bool     `json:"isActive" db:"is_active"`
	IsFeatured  bool     `json:"isFeatured" db:"is_featured"`
	IsNew       bool     `json:"isNew" db:"is_new"`
	OnSale      bool     `json:"onSale" db:"on_sale"`

	Rating       float64 `json:"rating" db:"rating"`
	ReviewsCount int     `json:"reviewsCount" db:"reviews_count"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// InStock reports whether the product can still be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// LowStockThreshold is the stock level at or below which staff get a
// restock alert after a shipment drains inventory.
const LowStockThreshold = 10

// ProductReview is a 1-5 star rating tied to a delivered order, one review
// per product per order.
type ProductReview struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"productId" db:"product_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	OrderID   *int64    `json:"orderId,omitempty" db:"order_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
