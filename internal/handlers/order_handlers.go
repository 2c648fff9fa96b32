package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pdf"
)

const orderColumns = `
	id, order_number, user_id, full_name, email, phone, address, city, state, zip_code,
	total, shipping_cost, status, payment_method, deal_usage_counted, created_at, updated_at`

func scanOrder(scanner interface{ Scan(...any) error }) (models.Order, error) {
	var o models.Order
	err := scanner.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.FullName, &o.Email, &o.Phone,
		&o.Address, &o.City, &o.State, &o.ZipCode, &o.Total, &o.ShippingCost,
		&o.Status, &o.PaymentMethod, &o.DealUsageCounted, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// loadOrderItems fetches the line items for one order.
func loadOrderItems(q dbtx, orderID int64) ([]models.OrderItem, error) {
	rows, err := q.Query(`
		SELECT id, order_id, product_id, product_name, price, quantity
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetMyOrders is the handler for GET /v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := currentUserID(c)

	rows, err := h.DB.Query("SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order"})
			return
		}
		orders = append(orders, o)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID := currentUserID(c)
	orderID := c.Param("id")

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ? AND user_id = ?", orderID, userID)
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

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items, "subtotal": order.Subtotal()})
}

// CancelOrder lets a customer cancel their own order while it is still
// pending: POST /v1/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	userID := currentUserID(c)
	orderID := c.Param("id")

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ? AND user_id = ?", orderID, userID)
	order, err := scanOrder(row)
	if err != nil {
		c.JSON(http.StatusOK, fail("Order not found."))
		return
	}

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusOK, fail("Only pending orders can be cancelled."))
		return
	}

	if _, err := h.DB.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		models.OrderStatusCancelled, time.Now(), order.ID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to cancel order."))
		return
	}

	h.Notifier.OrderStatusChanged(&order, models.OrderStatusCancelled)

	c.JSON(http.StatusOK, ok(gin.H{"message": "Order " + order.OrderNumber + " has been cancelled."}))
}

// ConfirmReceived lets a customer confirm a delivered order arrived:
// POST /v1/orders/:id/received
// For COD orders this is the moment revenue is booked.
func (h *Handlers) ConfirmReceived(c *gin.Context) {
	userID := currentUserID(c)
	orderID := c.Param("id")

	row := h.DB.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ? AND user_id = ?", orderID, userID)
	order, err := scanOrder(row)
	if err != nil {
		c.JSON(http.StatusOK, fail("Order not found."))
		return
	}

	if order.Status != models.OrderStatusDelivered {
		c.JSON(http.StatusOK, fail("You can only confirm receipt of a delivered order."))
		return
	}

	if _, err := h.DB.Exec("UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		models.OrderStatusReceived, time.Now(), order.ID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update order."))
		return
	}

	h.Notifier.OrderStatusChanged(&order, models.OrderStatusReceived)

	c.JSON(http.StatusOK, ok(gin.H{"message": "Thank you for confirming receipt of " + order.OrderNumber + "!"}))
}

// DownloadReceipt streams the PDF receipt: GET /v1/orders/:id/receipt
// Staff can pull any receipt; customers only their own.
func (h *Handlers) DownloadReceipt(c *gin.Context) {
	userID := currentUserID(c)
	isStaffRaw, _ := c.Get("isStaff")
	isStaff, _ := isStaffRaw.(bool)
	orderID := c.Param("id")

	query := "SELECT " + orderColumns + " FROM orders WHERE id = ?"
	args := []any{orderID}
	if !isStaff {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	row := h.DB.QueryRow(query, args...)
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

	receipt, err := pdf.GenerateOrderReceipt(&order, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", order.OrderNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", receipt)
}
