package handlers

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/jcgamayo/pcbulacan-golang/internal/auth"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

// --- Registration & Login ---

type RegisterInput struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Phone     *string `json:"phone"`
}

func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reject duplicate emails up front for a clean error message.
	var exists int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", input.Email).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name, phone, is_staff, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, 1, ?, ?)`,
		input.Email, password.Hash, input.FirstName, input.LastName, input.Phone, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	userID, _ := result.LastInsertId()

	token, err := auth.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account created but token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user": gin.H{
			"id":        userID,
			"email":     input.Email,
			"firstName": input.FirstName,
			"lastName":  input.LastName,
		},
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, email, password_hash, first_name, last_name, is_staff, is_active
		FROM users WHERE email = ?`, input.Email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.IsStaff, &user.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil || !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"isStaff":   user.IsStaff,
		},
	})
}

// --- Profile ---

func (h *Handlers) GetProfile(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, email, first_name, last_name, is_staff, is_active,
		       phone, address, city, state, zip_code, created_at, updated_at
		FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.IsStaff, &user.IsActive,
		&user.Phone, &user.Address, &user.City, &user.State, &user.ZipCode, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileInput struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zipCode"`
}

func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.DB.Exec(`
		UPDATE users
		SET first_name = ?, last_name = ?, phone = ?, address = ?, city = ?, state = ?, zip_code = ?, updated_at = ?
		WHERE id = ?`,
		input.FirstName, input.LastName, input.Phone, input.Address, input.City, input.State, input.ZipCode,
		time.Now(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Profile updated"}))
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (h *Handlers) ChangePassword(c *gin.Context) {
	userID := currentUserID(c)

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hash string
	if err := h.DB.QueryRow("SELECT password_hash FROM users WHERE id = ?", userID).Scan(&hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: hash}
	matches, err := password.Matches(input.CurrentPassword)
	if err != nil || !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	if err := password.Set(input.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		password.Hash, time.Now(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Password changed"}))
}

// --- Password Reset (6-digit mailed code) ---

// newResetCode draws a uniform 6-digit code.
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type SendResetCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// SendResetCode issues a fresh code, invalidating any unused older codes
// for the same email. The response never reveals whether the email exists.
func (h *Handlers) SendResetCode(c *gin.Context) {
	var input SendResetCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Please provide a valid email address."))
		return
	}

	var exists int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", input.Email).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
		return
	}

	if exists > 0 {
		code, err := newResetCode()
		if err != nil {
			c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
			return
		}

		// One live code per email
		if _, err := h.DB.Exec("DELETE FROM password_reset_codes WHERE email = ? AND is_used = 0", input.Email); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
			return
		}
		if _, err := h.DB.Exec(
			"INSERT INTO password_reset_codes (email, code, is_used, created_at) VALUES (?, ?, 0, ?)",
			input.Email, code, time.Now()); err != nil {
			c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
			return
		}

		if err := h.Mailer.SendPasswordResetCode(input.Email, code); err != nil {
			h.Logger.Warn("reset code email failed", zap.String("email", input.Email), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "If that email is registered, a reset code is on its way."}))
}

type VerifyResetCodeInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// loadResetCode fetches the newest matching code row.
func (h *Handlers) loadResetCode(email, code string) (*models.PasswordResetCode, error) {
	var rc models.PasswordResetCode
	err := h.DB.QueryRow(`
		SELECT id, email, code, is_used, created_at
		FROM password_reset_codes
		WHERE email = ? AND code = ?
		ORDER BY created_at DESC LIMIT 1`,
		email, code,
	).Scan(&rc.ID, &rc.Email, &rc.Code, &rc.IsUsed, &rc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (h *Handlers) VerifyResetCode(c *gin.Context) {
	var input VerifyResetCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Please provide the email and 6-digit code."))
		return
	}

	rc, err := h.loadResetCode(input.Email, input.Code)
	if err != nil {
		c.JSON(http.StatusOK, fail("Invalid reset code. Please check and try again."))
		return
	}
	if rc.IsUsed {
		c.JSON(http.StatusOK, fail("Invalid reset code. Please check and try again."))
		return
	}
	if rc.IsExpired(time.Now()) {
		c.JSON(http.StatusOK, fail("This reset code has expired. Please request a new one."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Code verified. You can now set a new password."}))
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h *Handlers) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Please provide the email, code and new password."))
		return
	}

	rc, err := h.loadResetCode(input.Email, input.Code)
	if err != nil || rc.IsUsed {
		c.JSON(http.StatusOK, fail("Invalid reset code. Please check and try again."))
		return
	}
	if rc.IsExpired(time.Now()) {
		c.JSON(http.StatusOK, fail("This reset code has expired. Please request a new one."))
		return
	}

	var password models.Password
	if err := password.Set(input.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE email = ?",
		password.Hash, time.Now(), input.Email); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
		return
	}
	// Consume the code
	if _, err := tx.Exec("UPDATE password_reset_codes SET is_used = 1 WHERE id = ?", rc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, fail("Something went wrong. Please try again."))
		return
	}

	c.JSON(http.StatusOK, ok(gin.H{"message": "Password reset successful. You can now log in."}))
}

// --- Address book ---

type AddressInput struct {
	Label     string `json:"label" binding:"required"`
	FullName  string `json:"fullName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (h *Handlers) GetMyAddresses(c *gin.Context) {
	userID := currentUserID(c)

	rows, err := h.DB.Query(`
		SELECT id, user_id, label, full_name, phone, address, city, state, zip_code, is_default, created_at
		FROM user_addresses WHERE user_id = ?
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load addresses"})
		return
	}
	defer rows.Close()

	addresses := []models.SavedAddress{}
	for rows.Next() {
		var a models.SavedAddress
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.FullName, &a.Phone, &a.Address,
			&a.City, &a.State, &a.ZipCode, &a.IsDefault, &a.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan address"})
			return
		}
		addresses = append(addresses, a)
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func (h *Handlers) CreateAddress(c *gin.Context) {
	userID := currentUserID(c)

	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if input.IsDefault {
		if _, err := tx.Exec("UPDATE user_addresses SET is_default = 0 WHERE user_id = ?", userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
			return
		}
	}

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO user_addresses (user_id, label, full_name, phone, address, city, state, zip_code, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, input.Label, input.FullName, input.Phone, input.Address,
		input.City, input.State, input.ZipCode, input.IsDefault, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "Address saved", "id": id})
}

func (h *Handlers) UpdateAddress(c *gin.Context) {
	userID := currentUserID(c)
	addressID := c.Param("id")

	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	if input.IsDefault {
		if _, err := tx.Exec("UPDATE user_addresses SET is_default = 0 WHERE user_id = ?", userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
	}

	// updated_at always changes, so RowsAffected stays a reliable
	// existence check even when the submitted fields are identical.
	result, err := tx.Exec(`
		UPDATE user_addresses
		SET label = ?, full_name = ?, phone = ?, address = ?, city = ?, state = ?, zip_code = ?, is_default = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		input.Label, input.FullName, input.Phone, input.Address,
		input.City, input.State, input.ZipCode, input.IsDefault, time.Now(), addressID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
}

func (h *Handlers) DeleteAddress(c *gin.Context) {
	userID := currentUserID(c)
	addressID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM user_addresses WHERE id = ? AND user_id = ?", addressID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address removed"})
}
