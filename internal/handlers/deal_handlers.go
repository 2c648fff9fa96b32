package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pricing"
)

const dealColumns = `
	id, title, description, deal_type, discount_percentage, discount_amount,
	start_date, end_date, is_featured, status, max_uses, current_uses,
	banner_image_url, badge_text, created_at, updated_at, created_by`

func scanDeal(scanner interface{ Scan(...any) error }) (models.Deal, error) {
	var d models.Deal
	err := scanner.Scan(&d.ID, &d.Title, &d.Description, &d.DealType, &d.DiscountPercentage, &d.DiscountAmount,
		&d.StartDate, &d.EndDate, &d.IsFeatured, &d.Status, &d.MaxUses, &d.CurrentUses,
		&d.BannerImageURL, &d.BadgeText, &d.CreatedAt, &d.UpdatedAt, &d.CreatedBy)
	return d, err
}

// DealResponse carries a deal plus its discounted products for the deals
// page.
type DealResponse struct {
	models.Deal
	DiscountDisplay string            `json:"discountDisplay"`
	Products        []ProductResponse `json:"products"`
}

// GetDeals is the public deals page: GET /v1/deals
// Only live deals are returned; ?featured=1 narrows to the hero section.
func (h *Handlers) GetDeals(c *gin.Context) {
	now := time.Now()
	query := "SELECT " + dealColumns + ` FROM deals
		WHERE status = 'active' AND start_date <= ? AND end_date >= ?
		  AND (max_uses IS NULL OR current_uses < max_uses)`
	args := []any{now, now}
	if c.Query("featured") == "1" {
		query += " AND is_featured = 1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query deals"})
		return
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan deal"})
			return
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating deals"})
		return
	}

	responses := []DealResponse{}
	for _, d := range deals {
		products, err := h.dealProducts(d, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deal products"})
			return
		}
		responses = append(responses, DealResponse{
			Deal:            d,
			DiscountDisplay: d.DiscountDisplay(),
			Products:        products,
		})
	}

	c.JSON(http.StatusOK, gin.H{"deals": responses})
}

// dealProducts loads a deal's active products with the deal's own discount
// applied.
func (h *Handlers) dealProducts(d models.Deal, now time.Time) ([]ProductResponse, error) {
	rows, err := h.DB.Query(`
		SELECT `+productColumns+`
		FROM products
		WHERE id IN (SELECT product_id FROM deal_products WHERE deal_id = ?) AND is_active = 1
		ORDER BY name`, d.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []ProductResponse{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		resp := ProductResponse{
			Product:        p,
			FinalPrice:     pricing.FinalPrice(p.Price, &d),
			OriginalPrice:  pricing.OriginalPrice(p.Price, p.OldPrice, &d),
			Savings:        pricing.Savings(p.Price, p.OldPrice, &d),
			SavingsPercent: pricing.SavingsPercent(p.Price, p.OldPrice, &d),
			HasActiveDeal:  true,
		}
		if d.BadgeText != "" {
			resp.DealBadge = d.BadgeText
		} else {
			resp.DealBadge = d.DiscountDisplay()
		}
		products = append(products, resp)
	}
	return products, rows.Err()
}

// --- Admin CRUD ---

type DealInput struct {
	Title              string    `json:"title" binding:"required"`
	Description        string    `json:"description"`
	DealType           string    `json:"dealType" binding:"required,oneof=percentage fixed bogo bundle"`
	DiscountPercentage *float64  `json:"discountPercentage"`
	DiscountAmount     *float64  `json:"discountAmount"`
	StartDate          time.Time `json:"startDate" binding:"required"`
	EndDate            time.Time `json:"endDate" binding:"required"`
	IsFeatured         bool      `json:"isFeatured"`
	Status             string    `json:"status" binding:"required,oneof=draft active scheduled expired"`
	MaxUses            *int64    `json:"maxUses"`
	BannerImageURL     *string   `json:"bannerImageUrl"`
	BadgeText          string    `json:"badgeText"`
	ProductIDs         []int64   `json:"productIds" binding:"required,min=1"`
}

func (input *DealInput) validateDiscount() string {
	switch input.DealType {
	case models.DealTypePercentage:
		if input.DiscountPercentage == nil || *input.DiscountPercentage <= 0 || *input.DiscountPercentage > 100 {
			return "Percentage deals need a discount between 0 and 100."
		}
	case models.DealTypeFixed:
		if input.DiscountAmount == nil || *input.DiscountAmount <= 0 {
			return "Fixed deals need a positive discount amount."
		}
	}
	if !input.EndDate.After(input.StartDate) {
		return "End date must be after the start date."
	}
	return ""
}

// GetAllDeals lists every deal for the admin dashboard regardless of
// status. Statuses are refreshed first so the list never shows a deal as
// scheduled after its window opened. Supports ?status=.
func (h *Handlers) GetAllDeals(c *gin.Context) {
	if err := h.RefreshDealStatuses(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh deal statuses"})
		return
	}

	query := "SELECT " + dealColumns + " FROM deals"
	args := []any{}
	if status := c.Query("status"); status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query deals"})
		return
	}
	defer rows.Close()

	now := time.Now()
	type adminDeal struct {
		models.Deal
		IsLive          bool   `json:"isLive"`
		DiscountDisplay string `json:"discountDisplay"`
		ProductCount    int    `json:"productCount"`
	}

	deals := []adminDeal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan deal"})
			return
		}
		entry := adminDeal{Deal: d, IsLive: d.IsLive(now), DiscountDisplay: d.DiscountDisplay()}
		if err := h.DB.QueryRow("SELECT COUNT(*) FROM deal_products WHERE deal_id = ?", d.ID).Scan(&entry.ProductCount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		deals = append(deals, entry)
	}

	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

func (h *Handlers) CreateDeal(c *gin.Context) {
	userID := currentUserID(c)

	var input DealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validateDiscount(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO deals (title, description, deal_type, discount_percentage, discount_amount,
		                   start_date, end_date, is_featured, status, max_uses, current_uses,
		                   banner_image_url, badge_text, created_at, updated_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)`,
		input.Title, input.Description, input.DealType, input.DiscountPercentage, input.DiscountAmount,
		input.StartDate, input.EndDate, input.IsFeatured, input.Status, input.MaxUses,
		input.BannerImageURL, input.BadgeText, now, now, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
		return
	}
	dealID, _ := result.LastInsertId()

	for _, productID := range input.ProductIDs {
		if _, err := tx.Exec("INSERT INTO deal_products (deal_id, product_id) VALUES (?, ?)",
			dealID, productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach products to deal"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	deal := &models.Deal{
		ID:                 dealID,
		Title:              input.Title,
		Description:        input.Description,
		DealType:           input.DealType,
		DiscountPercentage: input.DiscountPercentage,
		DiscountAmount:     input.DiscountAmount,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Status:             input.Status,
		MaxUses:            input.MaxUses,
	}
	h.Notifier.NewDeal(deal)

	c.JSON(http.StatusCreated, gin.H{"message": "Deal created", "id": dealID})
}

func (h *Handlers) UpdateDeal(c *gin.Context) {
	dealID := c.Param("id")

	var input DealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validateDiscount(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE deals
		SET title = ?, description = ?, deal_type = ?, discount_percentage = ?, discount_amount = ?,
		    start_date = ?, end_date = ?, is_featured = ?, status = ?, max_uses = ?,
		    banner_image_url = ?, badge_text = ?, updated_at = ?
		WHERE id = ?`,
		input.Title, input.Description, input.DealType, input.DiscountPercentage, input.DiscountAmount,
		input.StartDate, input.EndDate, input.IsFeatured, input.Status, input.MaxUses,
		input.BannerImageURL, input.BadgeText, time.Now(), dealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	// Replace the product set
	if _, err := tx.Exec("DELETE FROM deal_products WHERE deal_id = ?", dealID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal products"})
		return
	}
	for _, productID := range input.ProductIDs {
		if _, err := tx.Exec("INSERT INTO deal_products (deal_id, product_id) VALUES (?, ?)",
			dealID, productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal products"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deal updated"})
}

// ToggleDealStatus flips a deal between active and draft. Activating a
// deal inside its window broadcasts it to customers.
func (h *Handlers) ToggleDealStatus(c *gin.Context) {
	dealID := c.Param("id")

	row := h.DB.QueryRow("SELECT "+dealColumns+" FROM deals WHERE id = ?", dealID)
	d, err := scanDeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, fail("Deal not found."))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Database error."))
		return
	}

	newStatus := models.DealStatusActive
	if d.Status == models.DealStatusActive {
		newStatus = models.DealStatusDraft
	}

	if _, err := h.DB.Exec("UPDATE deals SET status = ?, updated_at = ? WHERE id = ?",
		newStatus, time.Now(), d.ID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update deal status."))
		return
	}

	if newStatus == models.DealStatusActive {
		d.Status = newStatus
		h.Notifier.NewDeal(&d)
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Deal is now " + newStatus, "status": newStatus}))
}

func (h *Handlers) DeleteDeal(c *gin.Context) {
	dealID := c.Param("id")

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deal_products WHERE deal_id = ?", dealID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
		return
	}
	result, err := tx.Exec("DELETE FROM deals WHERE id = ?", dealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deal deleted"})
}

// --- Usage reconciliation ---

// ReconcileDealUsage credits each deal once per qualifying order. An order
// qualifies once it is processing or beyond and has not been counted yet;
// the deal_usage_counted flag makes re-runs no-ops. Returns the number of
// orders flagged.
func (h *Handlers) ReconcileDealUsage() (int, error) {
	rows, err := h.DB.Query(`
		SELECT id, created_at FROM orders
		WHERE status IN ('processing', 'shipped', 'delivered', 'received')
		  AND deal_usage_counted = 0
		ORDER BY created_at`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type pendingOrder struct {
		id        int64
		createdAt time.Time
	}
	var pending []pendingOrder
	for rows.Next() {
		var o pendingOrder
		if err := rows.Scan(&o.id, &o.createdAt); err != nil {
			return 0, err
		}
		pending = append(pending, o)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	counted := 0
	for _, order := range pending {
		// Distinct deals that were running when the order was placed.
		// Each deal counts once per order, never once per line item.
		dealRows, err := h.DB.Query(`
			SELECT DISTINCT d.id
			FROM deals d
			JOIN deal_products dp ON dp.deal_id = d.id
			JOIN order_items oi ON oi.product_id = dp.product_id
			WHERE oi.order_id = ?
			  AND d.status = 'active'
			  AND d.start_date <= ? AND d.end_date >= ?`,
			order.id, order.createdAt, order.createdAt)
		if err != nil {
			return counted, err
		}

		var dealIDs []int64
		for dealRows.Next() {
			var id int64
			if err := dealRows.Scan(&id); err != nil {
				dealRows.Close()
				return counted, err
			}
			dealIDs = append(dealIDs, id)
		}
		if err := dealRows.Err(); err != nil {
			dealRows.Close()
			return counted, err
		}
		dealRows.Close()

		for _, dealID := range dealIDs {
			if _, err := h.DB.Exec("UPDATE deals SET current_uses = current_uses + 1 WHERE id = ?", dealID); err != nil {
				return counted, err
			}
		}

		// Flag the order even when it used no deals, so it is never
		// rescanned.
		if _, err := h.DB.Exec("UPDATE orders SET deal_usage_counted = 1 WHERE id = ?", order.id); err != nil {
			return counted, err
		}
		counted++
	}

	return counted, nil
}

// ReconcileDealUsageHandler lets staff trigger a reconciliation run from
// the dashboard.
func (h *Handlers) ReconcileDealUsageHandler(c *gin.Context) {
	counted, err := h.ReconcileDealUsage()
	if err != nil {
		h.Logger.Error("deal usage reconciliation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, fail("Reconciliation failed."))
		return
	}
	c.JSON(http.StatusOK, ok(gin.H{"ordersCounted": counted}))
}

// RefreshDealStatuses promotes scheduled deals whose window has opened and
// expires active deals whose window has closed. Runs from the background
// worker.
func (h *Handlers) RefreshDealStatuses() error {
	now := time.Now()
	if _, err := h.DB.Exec(
		"UPDATE deals SET status = 'active', updated_at = ? WHERE status = 'scheduled' AND start_date <= ? AND end_date >= ?",
		now, now, now); err != nil {
		return err
	}
	if _, err := h.DB.Exec(
		"UPDATE deals SET status = 'expired', updated_at = ? WHERE status = 'active' AND end_date < ?",
		now, now); err != nil {
		return err
	}
	return nil
}
