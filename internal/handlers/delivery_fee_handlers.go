package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

//
// --- Delivery Fee Handlers (admin) ---
//

// GetDeliveryFees is the handler for GET /v1/admin/delivery-fees.
// Returns the full rate table plus the summary cards the dashboard shows.
func (h *Handlers) GetDeliveryFees(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, city, state, fee_amount, min_order_free_delivery, estimated_days, is_available, created_at, updated_at
		FROM delivery_fees
		ORDER BY state, city`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query delivery fees"})
		return
	}
	defer rows.Close()

	fees := []models.DeliveryFee{}
	for rows.Next() {
		var fee models.DeliveryFee
		if err := rows.Scan(&fee.ID, &fee.City, &fee.State, &fee.FeeAmount, &fee.MinOrderFreeDelivery,
			&fee.EstimatedDays, &fee.IsAvailable, &fee.CreatedAt, &fee.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan delivery fee"})
			return
		}
		fees = append(fees, fee)
	}

	var activeCount, freeDeliveryCount int
	var feeSum float64
	for _, fee := range fees {
		if fee.IsAvailable {
			activeCount++
		}
		if fee.MinOrderFreeDelivery > 0 {
			freeDeliveryCount++
		}
		feeSum += fee.FeeAmount
	}
	avgFee := 0.0
	if len(fees) > 0 {
		avgFee = feeSum / float64(len(fees))
	}

	c.JSON(http.StatusOK, gin.H{
		"deliveryFees": fees,
		"stats": gin.H{
			"totalLocations":    len(fees),
			"activeLocations":   activeCount,
			"averageFee":        avgFee,
			"freeDeliveryCount": freeDeliveryCount,
		},
	})
}

type DeliveryFeeInput struct {
	City                 string  `json:"city" binding:"required"`
	State                string  `json:"state" binding:"required"`
	FeeAmount            float64 `json:"feeAmount" binding:"gte=0"`
	MinOrderFreeDelivery float64 `json:"minOrderFreeDelivery" binding:"gte=0"`
	EstimatedDays        string  `json:"estimatedDays" binding:"required"`
	IsAvailable          *bool   `json:"isAvailable"`
}

// CreateDeliveryFee is the handler for POST /v1/admin/delivery-fees.
// One rate per (city, state); a duplicate insert trips the unique key.
func (h *Handlers) CreateDeliveryFee(c *gin.Context) {
	var input DeliveryFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO delivery_fees (city, state, fee_amount, min_order_free_delivery, estimated_days, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		input.City, input.State, input.FeeAmount, input.MinOrderFreeDelivery,
		input.EstimatedDays, isAvailable, now, now)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A delivery rate for this city and state already exists"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "Delivery fee created", "id": id})
}

// UpdateDeliveryFee is the handler for PUT /v1/admin/delivery-fees/:id
func (h *Handlers) UpdateDeliveryFee(c *gin.Context) {
	feeID := c.Param("id")

	var input DeliveryFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	result, err := h.DB.Exec(`
		UPDATE delivery_fees
		SET city = ?, state = ?, fee_amount = ?, min_order_free_delivery = ?, estimated_days = ?, is_available = ?, updated_at = ?
		WHERE id = ?`,
		input.City, input.State, input.FeeAmount, input.MinOrderFreeDelivery,
		input.EstimatedDays, isAvailable, time.Now(), feeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery fee"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery fee not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery fee updated"})
}

// ToggleDeliveryFeeAvailability is the handler for PATCH /v1/admin/delivery-fees/:id/toggle
func (h *Handlers) ToggleDeliveryFeeAvailability(c *gin.Context) {
	feeID := c.Param("id")

	result, err := h.DB.Exec(`
		UPDATE delivery_fees SET is_available = NOT is_available, updated_at = ? WHERE id = ?`,
		time.Now(), feeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to toggle delivery fee."))
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, fail("Delivery fee not found."))
		return
	}

	var isAvailable bool
	if err := h.DB.QueryRow("SELECT is_available FROM delivery_fees WHERE id = ?", feeID).Scan(&isAvailable); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to read delivery fee."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"isAvailable": isAvailable}))
}

// DeleteDeliveryFee is the handler for DELETE /v1/admin/delivery-fees/:id.
// Hard delete; locations without a row simply ship free.
func (h *Handlers) DeleteDeliveryFee(c *gin.Context) {
	feeID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM delivery_fees WHERE id = ?", feeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete delivery fee"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery fee not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery fee deleted"})
}
