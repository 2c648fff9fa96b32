package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

//
// --- Notification Handlers ---
//

// GetMyNotifications is the handler for GET /v1/notifications.
// Returns the 20 newest notifications plus the unread count.
func (h *Handlers) GetMyNotifications(c *gin.Context) {
	userID := currentUserID(c)

	rows, err := h.DB.Query(`
		SELECT id, user_id, notification_type, title, message, is_read, order_id, product_id, deal_id, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 20`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to query notifications."))
		return
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead,
			&n.OrderID, &n.ProductID, &n.DealID, &n.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to scan notification."))
			return
		}
		notifications = append(notifications, n)
	}

	var unread int
	if err := h.DB.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID).Scan(&unread); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to count unread notifications."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"notifications": notifications, "unreadCount": unread}))
}

// GetUnreadCount is the handler for GET /v1/notifications/unread-count.
// Lightweight endpoint the frontend polls for the bell badge.
func (h *Handlers) GetUnreadCount(c *gin.Context) {
	userID := currentUserID(c)

	var unread int
	if err := h.DB.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID).Scan(&unread); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to count unread notifications."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"unreadCount": unread}))
}

// MarkNotificationRead is the handler for POST /v1/notifications/:id/read.
// Ownership is enforced in the WHERE clause, not by a prior SELECT.
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	userID := currentUserID(c)
	notificationID := c.Param("id")

	result, err := h.DB.Exec(
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?",
		notificationID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update notification."))
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, fail("Notification not found."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Notification marked as read."}))
}

// MarkAllNotificationsRead is the handler for POST /v1/notifications/read-all
func (h *Handlers) MarkAllNotificationsRead(c *gin.Context) {
	userID := currentUserID(c)

	result, err := h.DB.Exec(
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update notifications."))
		return
	}

	marked, _ := result.RowsAffected()
	c.JSON(http.StatusOK, ok(gin.H{"message": "All notifications marked as read.", "marked": marked}))
}
