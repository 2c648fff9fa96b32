package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

// GetCategories lists active categories with their product counts.
func (h *Handlers) GetCategories(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT c.id, c.name, c.slug, c.description, c.image_url, c.is_active, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id AND p.is_active = 1) AS product_count
		FROM categories c
		WHERE c.is_active = 1
		ORDER BY c.name`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query categories"})
		return
	}
	defer rows.Close()

	type categoryResponse struct {
		models.Category
		ProductCount int `json:"productCount"`
	}

	categories := []categoryResponse{}
	for rows.Next() {
		var cat categoryResponse
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
			&cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt, &cat.ProductCount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan category"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}

func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	categorySlug, err := uniqueSlug(h.DB, "categories", input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO categories (name, slug, description, image_url, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Name, categorySlug, input.Description, input.ImageURL, isActive, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "id": id, "slug": categorySlug})
}

func (h *Handlers) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("id")

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	result, err := h.DB.Exec(`
		UPDATE categories
		SET name = ?, description = ?, image_url = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		input.Name, input.Description, input.ImageURL, isActive, time.Now(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory deactivates a category; its products stay but disappear
// from the storefront category filter.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("id")

	result, err := h.DB.Exec("UPDATE categories SET is_active = 0, updated_at = ? WHERE id = ?",
		time.Now(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deactivated"})
}
