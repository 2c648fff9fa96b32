package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pdf"
)

//
// --- Admin Order Handlers ---
//

// GetAllOrders is the handler for GET /v1/admin/orders.
// Supports ?status=, ?search= (order number or customer name) and
// ?date=YYYY-MM-DD filters.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	query := "SELECT " + orderColumns + " FROM orders WHERE 1=1"
	args := []any{}

	if status := c.Query("status"); status != "" {
		if !models.IsOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status: " + status})
			return
		}
		query += " AND status = ?"
		args = append(args, status)
	}
	if search := c.Query("search"); search != "" {
		query += " AND (order_number LIKE ? OR full_name LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like)
	}
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
		query += " AND DATE(created_at) = ?"
		args = append(args, date)
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	defer rows.Close()

	type adminOrderResponse struct {
		models.Order
		StatusDisplay      string   `json:"statusDisplay"`
		AllowedTransitions []string `json:"allowedTransitions"`
	}

	orders := []adminOrderResponse{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order"})
			return
		}
		orders = append(orders, adminOrderResponse{
			Order:              o,
			StatusDisplay:      models.StatusDisplay(o.Status),
			AllowedTransitions: models.AllowedTransitions(o.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetAdminOrderDetails is the handler for GET /v1/admin/orders/:id
func (h *Handlers) GetAdminOrderDetails(c *gin.Context) {
	orderID := c.Param("id")

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items, err := loadOrderItems(h.DB, order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":              order,
		"items":              items,
		"subtotal":           order.Subtotal(),
		"allowedTransitions": models.AllowedTransitions(order.Status),
	})
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PUT /v1/admin/orders/:id/status.
// Shipping is the special case: it is the one move that touches stock,
// and it either fully succeeds or leaves everything untouched.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid input: "+err.Error()))
		return
	}
	if !models.IsOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, fail("Unknown order status: "+input.Status))
		return
	}

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID)
	order, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, fail("Order not found."))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Database error."))
		return
	}

	if !models.CanTransition(order.Status, input.Status) {
		c.JSON(http.StatusOK, fail(fmt.Sprintf("Cannot move order from %s to %s.",
			models.StatusDisplay(order.Status), models.StatusDisplay(input.Status))))
		return
	}

	if input.Status == models.OrderStatusShipped {
		h.shipOrder(c, &order)
		return
	}

	if _, err := h.DB.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		input.Status, time.Now(), order.ID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update order status."))
		return
	}

	h.Notifier.OrderStatusChanged(&order, input.Status)

	h.Logger.Info("order status updated",
		zap.String("order", order.OrderNumber),
		zap.String("from", order.Status),
		zap.String("to", input.Status))

	c.JSON(http.StatusOK, ok(gin.H{
		"message": fmt.Sprintf("Order %s is now %s.", order.OrderNumber, models.StatusDisplay(input.Status)),
		"status":  input.Status,
	}))
}

// shippedLine is one line of a shipping order with the live stock it
// needs to draw from.
type shippedLine struct {
	ProductID int64
	Name      string
	Quantity  int
	Stock     int
}

// shipOrder moves an order to shipped and decrements stock for every
// line in one transaction. All product rows are locked up front; if any
// line is short the whole shipment is aborted and no stock moves.
func (h *Handlers) shipOrder(c *gin.Context, order *models.Order) {
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Transaction failed."))
		return
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT oi.product_id, p.name, oi.quantity, p.stock
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.product_id
		FOR UPDATE`, order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to lock order stock."))
		return
	}

	var lines []shippedLine
	for rows.Next() {
		var line shippedLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Quantity, &line.Stock); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, fail("Failed to read order stock."))
			return
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		c.JSON(http.StatusInternalServerError, fail("Failed to read order stock."))
		return
	}
	rows.Close()

	// Any shortfall aborts the whole shipment.
	for _, line := range lines {
		if line.Stock < line.Quantity {
			c.JSON(http.StatusConflict, fail(fmt.Sprintf(
				"Not enough stock for %s. Only %d left.", line.Name, line.Stock)))
			return
		}
	}

	for _, line := range lines {
		if _, err := tx.Exec("UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ?",
			line.Quantity, time.Now(), line.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to update stock."))
			return
		}
	}

	if _, err := tx.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		models.OrderStatusShipped, time.Now(), order.ID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update order status."))
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Commit failed."))
		return
	}

	// Post-commit: restock alerts, customer notification, emailed receipt.
	// None of these can undo the shipment, so failures are logged and
	// surfaced as a warning on the success reply.
	ctx := c.Request.Context()
	for _, line := range lines {
		h.Notifier.LowStock(ctx, line.ProductID, line.Name, line.Stock-line.Quantity)
	}
	h.Notifier.OrderStatusChanged(order, models.OrderStatusShipped)

	resp := gin.H{
		"message": fmt.Sprintf("Order %s has been shipped.", order.OrderNumber),
		"status":  models.OrderStatusShipped,
	}
	if err := h.emailShippedReceipt(order); err != nil {
		h.Logger.Warn("shipped receipt email failed",
			zap.String("order", order.OrderNumber), zap.Error(err))
		resp["warning"] = "Order shipped, but the receipt email could not be sent."
	}

	h.Logger.Info("order shipped",
		zap.String("order", order.OrderNumber),
		zap.Int("lines", len(lines)))

	c.JSON(http.StatusOK, ok(resp))
}

// emailShippedReceipt renders the PDF receipt and mails it to the
// customer.
func (h *Handlers) emailShippedReceipt(order *models.Order) error {
	items, err := loadOrderItems(h.DB, order.ID)
	if err != nil {
		return fmt.Errorf("load receipt items: %w", err)
	}

	receipt, err := pdf.GenerateOrderReceipt(order, items)
	if err != nil {
		return fmt.Errorf("generate receipt: %w", err)
	}

	if err := h.Mailer.SendOrderShipped(order.Email, order.FullName, order.OrderNumber, receipt); err != nil {
		return fmt.Errorf("send shipped email: %w", err)
	}
	return nil
}
