package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/pricing"
)

//
// --- Cart Handlers ---
//

// getOrCreateCartID finds a user's cart or creates one.
// This is a helper function to be used within a transaction.
func (h *Handlers) getOrCreateCartID(tx dbtx, userID int64) (int64, error) {
	var cartID int64

	err := tx.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}

	if err == sql.ErrNoRows {
		now := time.Now()
		result, err := tx.Exec("INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, ?, ?)",
			userID, now, now)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	return 0, err
}

type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

func (h *Handlers) AddToCart(c *gin.Context) {
	userID := currentUserID(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid input: "+err.Error()))
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Transaction failed."))
		return
	}
	defer tx.Rollback()

	cartID, err := h.getOrCreateCartID(tx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Cart initialization failed."))
		return
	}

	var stock int
	var name string
	err = tx.QueryRow("SELECT stock, name FROM products WHERE id = ? AND is_active = 1", input.ProductID).
		Scan(&stock, &name)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, fail("Product not found or not available."))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Database error."))
		return
	}

	// The add must not push the cart line past available stock.
	var inCart int
	_ = tx.QueryRow("SELECT quantity FROM cart_items WHERE cart_id = ? AND product_id = ?",
		cartID, input.ProductID).Scan(&inCart)
	if stock < inCart+input.Quantity {
		c.JSON(http.StatusConflict, fail("Not enough stock for "+name+"."))
		return
	}

	// Insert or Update logic (Upsert)
	_, err = tx.Exec(`
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`,
		cartID, input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update cart."))
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Commit failed."))
		return
	}

	c.JSON(http.StatusCreated, ok(gin.H{"message": "Added " + name + " to your cart."}))
}

// CartItemResponse is one line of the cart page, priced with the live
// deal.
type CartItemResponse struct {
	ProductID     int64    `json:"productId"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Quantity      int      `json:"quantity"`
	LineTotal     float64  `json:"lineTotal"`
	Savings       float64  `json:"savings"`
	Stock         int      `json:"stock"`
}

// GetCart is the handler for GET /v1/cart.
// Subtotal and savings reflect whatever deals are live right now.
func (h *Handlers) GetCart(c *gin.Context) {
	userID := currentUserID(c)

	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, gin.H{
				"items":      []CartItemResponse{},
				"subtotal":   0.0,
				"savings":    0.0,
				"totalItems": 0,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find cart"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT p.id, p.name, p.slug, p.image_url, p.price, p.old_price, ci.quantity, p.stock
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ? AND p.is_active = 1
		ORDER BY ci.created_at`, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query cart items"})
		return
	}
	defer rows.Close()

	now := time.Now()
	items := []CartItemResponse{}
	var subtotal, savings float64
	totalItems := 0

	for rows.Next() {
		var item CartItemResponse
		var listPrice float64
		var oldPrice *float64
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Slug, &item.ImageURL,
			&listPrice, &oldPrice, &item.Quantity, &item.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan cart item"})
			return
		}

		deal, err := activeDealForProduct(h.DB, item.ProductID, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve pricing"})
			return
		}

		item.Price = pricing.FinalPrice(listPrice, deal)
		item.OriginalPrice = pricing.OriginalPrice(listPrice, oldPrice, deal)
		item.LineTotal = pricing.LineTotal(item.Price, item.Quantity)
		item.Savings = pricing.LineTotal(pricing.Savings(listPrice, oldPrice, deal), item.Quantity)

		subtotal += item.LineTotal
		savings += item.Savings
		totalItems += item.Quantity
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating cart items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"subtotal":   subtotal,
		"savings":    savings,
		"totalItems": totalItems,
	})
}

type UpdateCartItemInput struct {
	// gte=0 allows setting quantity to 0, which we treat as a delete
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// UpdateCartItem is the handler for PUT /v1/cart/items/:product_id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID := currentUserID(c)
	productIDStr := c.Param("product_id")

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail(err.Error()))
		return
	}

	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, fail("Cart not found."))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Failed to find cart."))
		return
	}

	if *input.Quantity == 0 {
		h.deleteCartItem(c, cartID, productIDStr)
		return
	}

	var stock int
	err = h.DB.QueryRow("SELECT stock FROM products WHERE id = ? AND is_active = 1", productIDStr).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, fail("Product not found."))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Failed to check product stock."))
		return
	}
	if stock < *input.Quantity {
		c.JSON(http.StatusConflict, fail("Not enough stock available for this quantity."))
		return
	}

	result, err := h.DB.Exec(`
		UPDATE cart_items
		SET quantity = ?, updated_at = ?
		WHERE cart_id = ? AND product_id = ?`,
		*input.Quantity, time.Now(), cartID, productIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to update item."))
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, fail("Item not found in cart."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Cart item quantity updated."}))
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:product_id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	userID := currentUserID(c)
	productIDStr := c.Param("product_id")

	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, fail("Cart not found."))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Failed to find cart."))
		return
	}

	h.deleteCartItem(c, cartID, productIDStr)
}

// deleteCartItem is a helper to DRY up the delete logic
func (h *Handlers) deleteCartItem(c *gin.Context, cartID int64, productIDStr string) {
	result, err := h.DB.Exec("DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?",
		cartID, productIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to delete item."))
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, fail("Item not found in cart."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Cart item removed."}))
}

// ClearCart empties the whole cart: DELETE /v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	userID := currentUserID(c)

	var cartID int64
	err := h.DB.QueryRow("SELECT id FROM carts WHERE user_id = ?", userID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, ok(gin.H{"message": "Cart is already empty."}))
			return
		}
		c.JSON(http.StatusInternalServerError, fail("Failed to find cart."))
		return
	}

	if _, err := h.DB.Exec("DELETE FROM cart_items WHERE cart_id = ?", cartID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to clear cart."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Cart cleared."}))
}
