package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/jcgamayo/pcbulacan-golang/internal/pricing"
)

// ProductResponse decorates a catalog row with the deal-aware pricing the
// storefront renders: final price, strikethrough price and savings.
type ProductResponse struct {
	models.Product
	FinalPrice     float64  `json:"finalPrice"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	Savings        float64  `json:"savings"`
	SavingsPercent int      `json:"savingsPercent"`
	DealBadge      string   `json:"dealBadge,omitempty"`
	HasActiveDeal  bool     `json:"hasActiveDeal"`
}

// decorateProduct attaches the live deal pricing to one product.
func (h *Handlers) decorateProduct(q dbtx, p models.Product, now time.Time) (ProductResponse, error) {
	deal, err := activeDealForProduct(q, p.ID, now)
	if err != nil {
		return ProductResponse{}, err
	}

	resp := ProductResponse{
		Product:        p,
		FinalPrice:     pricing.FinalPrice(p.Price, deal),
		OriginalPrice:  pricing.OriginalPrice(p.Price, p.OldPrice, deal),
		Savings:        pricing.Savings(p.Price, p.OldPrice, deal),
		SavingsPercent: pricing.SavingsPercent(p.Price, p.OldPrice, deal),
		HasActiveDeal:  deal != nil,
	}
	if deal != nil {
		if deal.BadgeText != "" {
			resp.DealBadge = deal.BadgeText
		} else {
			resp.DealBadge = deal.DiscountDisplay()
		}
	}
	return resp, nil
}

const productColumns = `
	id, category_id, name, slug, description, price, old_price, image_url, stock, sku,
	is_active, is_featured, is_new, on_sale, rating, reviews_count, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := scanner.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.OldPrice,
		&p.ImageURL, &p.Stock, &p.SKU, &p.IsActive, &p.IsFeatured, &p.IsNew, &p.OnSale,
		&p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetProducts is the public catalog listing: GET /v1/products
// Filters: ?category=<slug>, ?search=, ?featured=1, ?new=1, ?on_sale=1,
// ?stock_status=in_stock|low_stock|out_of_stock,
// ?sort=price_asc|price_desc|rating|newest (default newest).
func (h *Handlers) GetProducts(c *gin.Context) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active = 1"
	args := []any{}

	if categorySlug := c.Query("category"); categorySlug != "" {
		query += " AND category_id = (SELECT id FROM categories WHERE slug = ?)"
		args = append(args, categorySlug)
	}
	if search := c.Query("search"); search != "" {
		query += " AND (name LIKE ? OR description LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like)
	}
	if c.Query("featured") == "1" {
		query += " AND is_featured = 1"
	}
	if c.Query("new") == "1" {
		query += " AND is_new = 1"
	}
	if c.Query("on_sale") == "1" {
		query += " AND on_sale = 1"
	}
	applyStockStatusFilter(&query, c.Query("stock_status"))

	switch c.Query("sort") {
	case "price_asc":
		query += " ORDER BY price ASC"
	case "price_desc":
		query += " ORDER BY price DESC"
	case "rating":
		query += " ORDER BY rating DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query products"})
		return
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating products"})
		return
	}

	now := time.Now()
	responses := []ProductResponse{}
	for _, p := range products {
		resp, err := h.decorateProduct(h.DB, p, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve pricing"})
			return
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{"products": responses, "count": len(responses)})
}

func applyStockStatusFilter(query *string, stockStatus string) {
	switch stockStatus {
	case "in_stock":
		*query += " AND stock > 0"
	case "low_stock":
		*query += fmt.Sprintf(" AND stock > 0 AND stock <= %d", models.LowStockThreshold)
	case "out_of_stock":
		*query += " AND stock = 0"
	}
}

// GetAdminProducts lists the catalog for the dashboard, inactive rows
// included: GET /v1/admin/products
func (h *Handlers) GetAdminProducts(c *gin.Context) {
	query := "SELECT " + productColumns + " FROM products WHERE 1=1"
	args := []any{}

	if categorySlug := c.Query("category"); categorySlug != "" {
		query += " AND category_id = (SELECT id FROM categories WHERE slug = ?)"
		args = append(args, categorySlug)
	}
	if search := c.Query("search"); search != "" {
		query += " AND (name LIKE ? OR sku LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like)
	}
	if active := c.Query("is_active"); active == "1" || active == "0" {
		query += " AND is_active = " + active
	}
	applyStockStatusFilter(&query, c.Query("stock_status"))
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

type AddStockInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// AddProductStock is the restock endpoint POST /v1/admin/products/:id/stock.
// The quantity is added to the current stock, never assigned over it.
func (h *Handlers) AddProductStock(c *gin.Context) {
	productID := c.Param("id")

	var input AddStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Quantity must be at least 1."))
		return
	}

	result, err := h.DB.Exec("UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?",
		input.Quantity, time.Now(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to add stock."))
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, fail("Product not found."))
		return
	}

	var stock int
	if err := h.DB.QueryRow("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Failed to read stock."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"stock": stock}))
}

// GetProductSuggestions backs the search-bar autocomplete:
// GET /v1/products/suggestions?q=
func (h *Handlers) GetProductSuggestions(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusOK, gin.H{"suggestions": []gin.H{}})
		return
	}

	rows, err := h.DB.Query(`
		SELECT name, slug, image_url, price
		FROM products
		WHERE is_active = 1 AND name LIKE ?
		ORDER BY name
		LIMIT 8`, "%"+q+"%")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query suggestions"})
		return
	}
	defer rows.Close()

	suggestions := []gin.H{}
	for rows.Next() {
		var name, productSlug string
		var imageURL *string
		var price float64
		if err := rows.Scan(&name, &productSlug, &imageURL, &price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan suggestion"})
			return
		}
		suggestions = append(suggestions, gin.H{
			"name":     name,
			"slug":     productSlug,
			"imageUrl": imageURL,
			"price":    price,
		})
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetProductBySlug is the public detail page: GET /v1/products/:slug
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	productSlug := c.Param("slug")

	row := h.DB.QueryRow("SELECT "+productColumns+" FROM products WHERE slug = ? AND is_active = 1", productSlug)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	resp, err := h.decorateProduct(h.DB, p, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve pricing"})
		return
	}

	// Recent reviews for the detail page
	rows, err := h.DB.Query(`
		SELECT r.id, r.product_id, r.user_id, r.order_id, r.rating, r.comment, r.created_at, r.updated_at
		FROM product_reviews r
		WHERE r.product_id = ?
		ORDER BY r.created_at DESC
		LIMIT 20`, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}
	defer rows.Close()

	reviews := []models.ProductReview{}
	for rows.Next() {
		var r models.ProductReview
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.OrderID, &r.Rating, &r.Comment,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan review"})
			return
		}
		reviews = append(reviews, r)
	}

	c.JSON(http.StatusOK, gin.H{"product": resp, "reviews": reviews})
}

// --- Admin CRUD ---

type ProductInput struct {
	CategoryID  int64    `json:"categoryId" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	OldPrice    *float64 `json:"oldPrice"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       int      `json:"stock" binding:"gte=0"`
	SKU         *string  `json:"sku"`
	IsActive    *bool    `json:"isActive"`
	IsFeatured  bool     `json:"isFeatured"`
	IsNew       bool     `json:"isNew"`
	OnSale      bool     `json:"onSale"`
}

// CreateProduct is the admin endpoint POST /v1/admin/products.
// An active product triggers the new-product broadcast to customers.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	productSlug, err := uniqueSlug(h.DB, "products", input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO products (category_id, name, slug, description, price, old_price, image_url, stock, sku,
		                      is_active, is_featured, is_new, on_sale, rating, reviews_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		input.CategoryID, input.Name, productSlug, input.Description, input.Price, input.OldPrice,
		input.ImageURL, input.Stock, input.SKU, isActive, input.IsFeatured, input.IsNew, input.OnSale, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	productID, _ := result.LastInsertId()

	product := &models.Product{
		ID:       productID,
		Name:     input.Name,
		Price:    input.Price,
		IsActive: isActive,
	}
	h.Notifier.NewProduct(product)

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "id": productID, "slug": productSlug})
}

func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	result, err := h.DB.Exec(`
		UPDATE products
		SET category_id = ?, name = ?, description = ?, price = ?, old_price = ?, image_url = ?,
		    stock = ?, sku = ?, is_active = ?, is_featured = ?, is_new = ?, on_sale = ?, updated_at = ?
		WHERE id = ?`,
		input.CategoryID, input.Name, input.Description, input.Price, input.OldPrice, input.ImageURL,
		input.Stock, input.SKU, isActive, input.IsFeatured, input.IsNew, input.OnSale, time.Now(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct deactivates rather than deletes, so order history keeps
// its line items.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	result, err := h.DB.Exec("UPDATE products SET is_active = 0, updated_at = ? WHERE id = ?",
		time.Now(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}

// --- Ratings ---

type RatingInput struct {
	ProductID int64  `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type SubmitRatingsInput struct {
	OrderID int64         `json:"orderId" binding:"required"`
	Ratings []RatingInput `json:"ratings" binding:"required,dive"`
}

// SubmitProductRatings records star ratings for a received order, one
// review per product per order, then refreshes each product's average.
func (h *Handlers) SubmitProductRatings(c *gin.Context) {
	userID := currentUserID(c)

	var input SubmitRatingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid rating payload."))
		return
	}

	// The order must belong to the caller and be confirmed received.
	var status string
	err := h.DB.QueryRow("SELECT status FROM orders WHERE id = ? AND user_id = ?",
		input.OrderID, userID).Scan(&status)
	if err != nil {
		c.JSON(http.StatusOK, fail("Order not found."))
		return
	}
	if status != models.OrderStatusReceived && status != models.OrderStatusDelivered {
		c.JSON(http.StatusOK, fail("You can rate products once your order is delivered."))
		return
	}

	now := time.Now()
	for _, r := range input.Ratings {
		// Only products actually in the order can be rated
		var inOrder int
		if err := h.DB.QueryRow("SELECT COUNT(*) FROM order_items WHERE order_id = ? AND product_id = ?",
			input.OrderID, r.ProductID).Scan(&inOrder); err != nil || inOrder == 0 {
			continue
		}

		_, err := h.DB.Exec(`
			INSERT INTO product_reviews (product_id, user_id, order_id, rating, comment, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE rating = VALUES(rating), comment = VALUES(comment), updated_at = VALUES(updated_at)`,
			r.ProductID, userID, input.OrderID, r.Rating, r.Comment, now, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to save rating."))
			return
		}

		if err := h.refreshProductRating(r.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Failed to update product rating."))
			return
		}
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Thanks for rating your purchase!"}))
}

// refreshProductRating recomputes the denormalized average and count.
func (h *Handlers) refreshProductRating(productID int64) error {
	_, err := h.DB.Exec(`
		UPDATE products p
		SET p.rating = COALESCE((SELECT AVG(r.rating) FROM product_reviews r WHERE r.product_id = p.id), 0),
		    p.reviews_count = (SELECT COUNT(*) FROM product_reviews r WHERE r.product_id = p.id)
		WHERE p.id = ?`, productID)
	return err
}
