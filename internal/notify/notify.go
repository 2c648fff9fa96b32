// Package notify owns every in-app notification fan-out: customer order
// updates, broadcasts for new products and deals, and staff restock
// alerts. Fan-outs run after the transaction that triggered them; a
// failure here is logged and never rolls the trigger back.
package notify

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pricing"
)

// statusMessages are the customer-facing lines for each order status.
var statusMessages = map[string]string{
	models.OrderStatusPending:    "Your order is pending confirmation.",
	models.OrderStatusProcessing: "Your order is being processed!",
	models.OrderStatusShipped:    "Your order has been shipped! 📦",
	models.OrderStatusDelivered:  "Your order has been delivered! 🎉",
	models.OrderStatusReceived:   "Thank you for confirming receipt!",
	models.OrderStatusCancelled:  "Your order has been cancelled.",
}

// dbtx lets insert helpers run inside a caller's transaction or directly
// on the pool.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Notifier fans notifications out to users. Redis is optional; when nil,
// the low-stock dedup window falls back to a query against the
// notifications table itself.
type Notifier struct {
	DB     *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

func New(db *sql.DB, rdb *redis.Client, logger *zap.Logger) *Notifier {
	return &Notifier{DB: db, Redis: rdb, Logger: logger}
}

// Insert writes one notification, inside the caller's transaction when tx
// is the order-creating one.
func (n *Notifier) Insert(q dbtx, userID int64, notifType, title, message string, orderID, productID, dealID *int64) error {
	_, err := q.Exec(`
		INSERT INTO notifications (user_id, notification_type, title, message, is_read, order_id, product_id, deal_id, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		userID, notifType, title, message, orderID, productID, dealID, time.Now())
	return err
}

// OrderPlaced notifies the customer inside the checkout transaction, so
// the confirmation only exists if the order does.
func (n *Notifier) OrderPlaced(tx *sql.Tx, order *models.Order) error {
	title := fmt.Sprintf("Order %s Received", order.OrderNumber)
	message := fmt.Sprintf("We received your order! Total: %s", pricing.FormatPeso(order.Total))
	return n.Insert(tx, order.UserID, models.NotifyOrderUpdate, title, message, &order.ID, nil, nil)
}

// OrderStatusChanged notifies the customer after a lifecycle move. Shipped
// and delivered get their own types so the frontend can badge them.
func (n *Notifier) OrderStatusChanged(order *models.Order, newStatus string) {
	notifType := models.NotifyOrderUpdate
	switch newStatus {
	case models.OrderStatusShipped:
		notifType = models.NotifyOrderShipped
	case models.OrderStatusDelivered:
		notifType = models.NotifyOrderDelivered
	}

	message, ok := statusMessages[newStatus]
	if !ok {
		message = fmt.Sprintf("Your order status is now %s.", newStatus)
	}

	title := fmt.Sprintf("Order %s Update", order.OrderNumber)
	if err := n.Insert(n.DB, order.UserID, notifType, title, message, &order.ID, nil, nil); err != nil {
		n.Logger.Warn("order status notification failed",
			zap.String("order", order.OrderNumber), zap.Error(err))
	}

	// Staff get a heads-up when a customer confirms receipt, since that is
	// what books COD revenue.
	if newStatus == models.OrderStatusReceived {
		staffTitle := fmt.Sprintf("Order %s Confirmed Received", order.OrderNumber)
		staffMsg := fmt.Sprintf("%s confirmed receipt of order %s (%s).",
			order.FullName, order.OrderNumber, pricing.FormatPeso(order.Total))
		n.broadcast("is_staff = 1", models.NotifySystem, staffTitle, staffMsg, &order.ID, nil, nil)
	}
}

// NewProduct announces an active product to every active customer.
func (n *Notifier) NewProduct(product *models.Product) {
	if !product.IsActive {
		return
	}
	title := fmt.Sprintf("New Product: %s", product.Name)
	message := fmt.Sprintf("Check out our new product: %s at %s!",
		product.Name, pricing.FormatPeso(product.Price))
	n.broadcast("is_staff = 0", models.NotifyNewProduct, title, message, nil, &product.ID, nil)
}

// NewDeal announces a live deal to every active customer.
func (n *Notifier) NewDeal(deal *models.Deal) {
	if !deal.IsLive(time.Now()) {
		return
	}
	title := fmt.Sprintf("New Deal: %s", deal.Title)
	message := fmt.Sprintf("%s - %s", deal.Description, deal.DiscountDisplay())
	n.broadcast("is_staff = 0", models.NotifyNewDeal, title, message, nil, nil, &deal.ID)
}

// LowStock alerts staff when a shipment drains a product to the restock
// threshold. Deduped per product over 24 hours so one hot seller does not
// spam the dashboard.
func (n *Notifier) LowStock(ctx context.Context, productID int64, name string, stock int) {
	if stock <= 0 || stock > models.LowStockThreshold {
		return
	}
	if n.alertedRecently(ctx, productID) {
		return
	}

	title := fmt.Sprintf("Low Stock: %s", name)
	message := fmt.Sprintf("%s is down to %d units. Time to restock.", name, stock)
	n.broadcast("is_staff = 1", models.NotifyLowStock, title, message, nil, &productID, nil)
}

// alertedRecently implements the 24h dedup window, preferring a redis
// SETNX with TTL and falling back to the notifications table.
func (n *Notifier) alertedRecently(ctx context.Context, productID int64) bool {
	if n.Redis != nil {
		key := fmt.Sprintf("lowstock:alerted:%d", productID)
		set, err := n.Redis.SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err == nil {
			return !set
		}
		n.Logger.Warn("redis dedup check failed, falling back to DB", zap.Error(err))
	}

	var count int
	since := time.Now().Add(-24 * time.Hour)
	err := n.DB.QueryRow(`
		SELECT COUNT(*) FROM notifications
		WHERE notification_type = ? AND product_id = ? AND created_at > ?`,
		models.NotifyLowStock, productID, since).Scan(&count)
	if err != nil {
		n.Logger.Warn("low stock dedup query failed", zap.Error(err))
		return false
	}
	return count > 0
}

// broadcast inserts one notification per matching active user in a single
// multi-row INSERT.
func (n *Notifier) broadcast(userFilter, notifType, title, message string, orderID, productID, dealID *int64) {
	rows, err := n.DB.Query("SELECT id FROM users WHERE is_active = 1 AND " + userFilter)
	if err != nil {
		n.Logger.Warn("notification broadcast query failed", zap.Error(err))
		return
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			n.Logger.Warn("notification broadcast scan failed", zap.Error(err))
			return
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		n.Logger.Warn("notification broadcast rows failed", zap.Error(err))
		return
	}
	if len(userIDs) == 0 {
		return
	}

	query := "INSERT INTO notifications (user_id, notification_type, title, message, is_read, order_id, product_id, deal_id, created_at) VALUES "
	args := make([]any, 0, len(userIDs)*8)
	now := time.Now()
	for i, uid := range userIDs {
		if i > 0 {
			query += ", "
		}
		query += "(?, ?, ?, ?, 0, ?, ?, ?, ?)"
		args = append(args, uid, notifType, title, message, orderID, productID, dealID, now)
	}

	if _, err := n.DB.Exec(query, args...); err != nil {
		n.Logger.Warn("notification broadcast insert failed",
			zap.String("type", notifType), zap.Error(err))
		return
	}
	n.Logger.Info("notifications created",
		zap.String("type", notifType), zap.Int("recipients", len(userIDs)))
}
