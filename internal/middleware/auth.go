package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/auth"
)

// AuthMiddleware validates the Bearer token, loads the account and stores
// "userID" and "isStaff" on the context for the handlers downstream.
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 2. --- Validate Token ---
		userID, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 3. --- Load the account (deactivated accounts are locked out) ---
		var isStaff, isActive bool
		err = db.QueryRow("SELECT is_staff, is_active FROM users WHERE id = ?", userID).Scan(&isStaff, &isActive)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			c.Abort()
			return
		}
		if !isActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			c.Abort()
			return
		}

		// 4. --- Success ---
		c.Set("userID", userID)
		c.Set("isStaff", isStaff)
		c.Next()
	}
}

// StaffMiddleware gates the admin dashboard routes. Must run after
// AuthMiddleware so "isStaff" is already set.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isStaffRaw, exists := c.Get("isStaff")
		if !exists || !isStaffRaw.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
