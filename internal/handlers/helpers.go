package handlers

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

// newOrderNumber builds an order reference like ORD-3F2A91BC04.
func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + id[:10]
}

// uniqueSlug slugifies a name and appends -2, -3, ... until it does not
// collide in the given table.
func uniqueSlug(q dbtx, table, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int
		err := q.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE slug = ?", candidate).Scan(&count)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// activeDealForProduct returns the newest deal currently discounting a
// product, or nil when the product sells at list price.
func activeDealForProduct(q dbtx, productID int64, now time.Time) (*models.Deal, error) {
	var d models.Deal
	err := q.QueryRow(`
		SELECT d.id, d.title, d.deal_type, d.discount_percentage, d.discount_amount, d.badge_text
		FROM deals d
		JOIN deal_products dp ON dp.deal_id = d.id
		WHERE dp.product_id = ?
		  AND d.status = 'active'
		  AND d.start_date <= ? AND d.end_date >= ?
		  AND (d.max_uses IS NULL OR d.current_uses < d.max_uses)
		ORDER BY d.created_at DESC
		LIMIT 1`,
		productID, now, now,
	).Scan(&d.ID, &d.Title, &d.DealType, &d.DiscountPercentage, &d.DiscountAmount, &d.BadgeText)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	d.Status = models.DealStatusActive
	return &d, nil
}

// lookupDeliveryFee finds the available rate for a location by
// case-insensitive exact match. nil means the location ships free.
func lookupDeliveryFee(q dbtx, city, state string) (*models.DeliveryFee, error) {
	var f models.DeliveryFee
	err := q.QueryRow(`
		SELECT id, city, state, fee_amount, min_order_free_delivery, estimated_days, is_available
		FROM delivery_fees
		WHERE LOWER(city) = LOWER(?) AND LOWER(state) = LOWER(?) AND is_available = 1
		LIMIT 1`,
		strings.TrimSpace(city), strings.TrimSpace(state),
	).Scan(&f.ID, &f.City, &f.State, &f.FeeAmount, &f.MinOrderFreeDelivery, &f.EstimatedDays, &f.IsAvailable)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
