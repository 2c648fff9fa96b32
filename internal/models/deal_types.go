package models

import (
	"fmt"
	"time"
)

// Deal types
const (
	DealTypePercentage = "percentage"
	DealTypeFixed      = "fixed"
	DealTypeBOGO       = "bogo"
	DealTypeBundle     = "bundle"
)

// Deal statuses
const (
	DealStatusDraft     = "draft"
	DealStatusActive    = "active"
	DealStatusScheduled = "scheduled"
	DealStatusExpired   = "expired"
)

// Deal is a time-boxed promotion attached to a set of products through the
// deal_products join table. CurrentUses is maintained by the usage
// reconciliation worker, never by checkout directly.
type Deal struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	DealType    string `json:"dealType" db:"deal_type"`

	DiscountPercentage *float64 `json:"discountPercentage,omitempty" db:"discount_percentage"`
	DiscountAmount     *float64 `json:"discountAmount,omitempty" db:"discount_amount"`

	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`

	IsFeatured  bool   `json:"isFeatured" db:"is_featured"`
	Status      string `json:"status" db:"status"`
	MaxUses     *int64 `json:"maxUses,omitempty" db:"max_uses"`
	CurrentUses int64  `json:"currentUses" db:"current_uses"`

	BannerImageURL *string `json:"bannerImageUrl,omitempty" db:"banner_image_url"`
	BadgeText      string  `json:"badgeText" db:"badge_text"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	CreatedBy *int64    `json:"createdBy,omitempty" db:"created_by"`
}

// IsLive reports whether the deal discounts prices right now: it must be
// switched on, inside its date window, and under its usage cap.
func (d *Deal) IsLive(now time.Time) bool {
	if d.Status != DealStatusActive {
		return false
	}
	if now.Before(d.StartDate) || now.After(d.EndDate) {
		return false
	}
	if d.MaxUses != nil && d.CurrentUses >= *d.MaxUses {
		return false
	}
	return true
}

// DiscountDisplay formats the badge shown on product cards.
func (d *Deal) DiscountDisplay() string {
	switch d.DealType {
	case DealTypePercentage:
		if d.DiscountPercentage != nil {
			return fmt.Sprintf("%g%% OFF", *d.DiscountPercentage)
		}
	case DealTypeFixed:
		if d.DiscountAmount != nil {
			return fmt.Sprintf("₱%g OFF", *d.DiscountAmount)
		}
	case DealTypeBOGO:
		return "Buy 1 Get 1 FREE"
	case DealTypeBundle:
		return "Bundle Deal"
	}
	return "Special Offer"
}
