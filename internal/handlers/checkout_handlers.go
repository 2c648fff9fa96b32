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

// BuyNowInput is the single-item fast path that skips the cart.
type BuyNowInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CheckoutInput carries everything checkout needs in the request itself.
// Exactly one of ProductIDs (a subset of the cart) or BuyNow must be set.
type CheckoutInput struct {
	FullName      string `json:"fullName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	ZipCode       string `json:"zipCode" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=cod gcash paymaya"`

	ProductIDs []int64      `json:"productIds"`
	BuyNow     *BuyNowInput `json:"buyNow"`
}

// checkoutLine is one priced line item before it becomes an order_items
// row.
type checkoutLine struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// Checkout is the handler for POST /v1/checkout.
// It snapshots the selected items into an order. Stock is validated here
// but only decremented when the order ships.
func (h *Handlers) Checkout(c *gin.Context) {
	userID := currentUserID(c)

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid input: "+err.Error()))
		return
	}
	if (len(input.ProductIDs) == 0) == (input.BuyNow == nil) {
		c.JSON(http.StatusBadRequest, fail("Select cart items or use buy now, not both."))
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Transaction failed."))
		return
	}
	defer tx.Rollback()

	now := time.Now()
	var lines []checkoutLine
	var cartID int64
	fromCart := input.BuyNow == nil

	if fromCart {
		err = tx.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
		if err != nil {
			c.JSON(http.StatusBadRequest, fail("Your cart is empty."))
			return
		}
		for _, productID := range input.ProductIDs {
			var line checkoutLine
			var listPrice float64
			var stock int
			err = tx.QueryRow(`
				SELECT p.id, p.name, p.price, p.stock, ci.quantity
				FROM cart_items ci
				JOIN products p ON p.id = ci.product_id
				WHERE ci.cart_id = ? AND ci.product_id = ? AND p.is_active = 1`,
				cartID, productID,
			).Scan(&line.ProductID, &line.Name, &listPrice, &stock, &line.Quantity)
			if err != nil {
				if err == sql.ErrNoRows {
					c.JSON(http.StatusBadRequest, fail("One of the selected items is no longer in your cart."))
					return
				}
				c.JSON(http.StatusInternalServerError, fail("Database error."))
				return
			}
			if stock < line.Quantity {
				c.JSON(http.StatusConflict, fail("Not enough stock for "+line.Name+"."))
				return
			}

			deal, err := activeDealForProduct(tx, line.ProductID, now)
			if err != nil {
				c.JSON(http.StatusInternalServerError, fail("Failed to resolve pricing."))
				return
			}
			line.Price = pricing.FinalPrice(listPrice, deal)
			lines = append(lines, line)
		}
	} else {
		var line checkoutLine
		var listPrice float64
		var stock int
		err = tx.QueryRow(
			"SELECT id, name, price, stock FROM products WHERE id = ? AND is_active = 1",
			input.BuyNow.ProductID,
		).Scan(&line.ProductID, &line.Name, &listPrice, &stock)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, fail("Product not found or not available."))
				return
			}
			c.JSON(http.StatusInternalServerError, fail("Database error."))
			return
		}
		line.Quantity = input.BuyNow.Quantity
		if stock < line.Quantity {
			c.JSON(http.StatusConflict, fail("Not enough stock for "+line.Name+"."))
			return
		}

		deal, err := activeDealForProduct(tx, line.ProductID, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to resolve pricing."))
			return
		}
		line.Price = pricing.FinalPrice(listPrice, deal)
		lines = append(lines, line)
	}

	// Totals: shipping comes from the delivery rate of the destination.
	var subtotal float64
	for _, line := range lines {
		subtotal += pricing.LineTotal(line.Price, line.Quantity)
	}
	fee, err := lookupDeliveryFee(tx, input.City, input.State)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to compute shipping."))
		return
	}
	shippingCost := pricing.ShippingCost(subtotal, fee)
	total := subtotal + shippingCost

	// Create the order snapshot
	orderNumber := newOrderNumber()
	result, err := tx.Exec(`
		INSERT INTO orders (order_number, user_id, full_name, email, phone, address, city, state, zip_code,
		                    total, shipping_cost, status, payment_method, deal_usage_counted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?, 0, ?, ?)`,
		orderNumber, userID, input.FullName, input.Email, input.Phone, input.Address,
		input.City, input.State, input.ZipCode, total, shippingCost, input.PaymentMethod, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to create order."))
		return
	}
	orderID, _ := result.LastInsertId()

	for _, line := range lines {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, product_name, price, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, line.ProductID, line.Name, line.Price, line.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to save order items."))
			return
		}
	}

	// Purchased cart lines are gone once the order exists
	if fromCart {
		for _, line := range lines {
			if _, err := tx.Exec("DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?",
				cartID, line.ProductID); err != nil {
				c.JSON(http.StatusInternalServerError, fail("Failed to clear purchased items."))
				return
			}
		}
	}

	order := &models.Order{
		ID:          orderID,
		OrderNumber: orderNumber,
		UserID:      userID,
		Total:       total,
	}
	if err := h.Notifier.OrderPlaced(tx, order); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to record order confirmation."))
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Commit failed."))
		return
	}

	h.Logger.Info("order placed",
		zap.String("order", orderNumber),
		zap.Int64("user", userID),
		zap.Float64("total", total))

	c.JSON(http.StatusCreated, ok(gin.H{
		"orderNumber":  orderNumber,
		"orderId":      orderID,
		"subtotal":     subtotal,
		"shippingCost": shippingCost,
		"total":        total,
	}))
}

type CalculateShippingInput struct {
	City     string  `json:"city" binding:"required"`
	State    string  `json:"state" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
}

// CalculateShipping powers the live fee preview on the checkout page:
// POST /v1/shipping/calculate
func (h *Handlers) CalculateShipping(c *gin.Context) {
	var input CalculateShippingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid input: "+err.Error()))
		return
	}

	fee, err := lookupDeliveryFee(h.DB, input.City, input.State)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to look up delivery fee."))
		return
	}

	cost := pricing.ShippingCost(input.Subtotal, fee)
	resp := gin.H{"shippingCost": cost, "freeShipping": cost == 0}
	if fee != nil {
		resp["estimatedDays"] = fee.EstimatedDays
		if fee.MinOrderFreeDelivery > 0 && cost > 0 {
			resp["freeDeliveryThreshold"] = fee.MinOrderFreeDelivery
		}
	}

	c.JSON(http.StatusOK, ok(resp))
}
