package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User Model with Pointers for Nullable Fields
type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	IsStaff      bool   `json:"isStaff" db:"is_staff"`
	IsActive     bool   `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// --- Profile Fields (Pointers = Clean JSON) ---
	Phone   *string `json:"phone,omitempty" db:"phone"`
	Address *string `json:"address,omitempty" db:"address"`
	City    *string `json:"city,omitempty" db:"city"`
	State   *string `json:"state,omitempty" db:"state"`
	ZipCode *string `json:"zipCode,omitempty" db:"zip_code"`
}

// FullName joins the name parts the way receipts and notifications print it.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SavedAddress is an entry in the customer's address book. One address per
// user may be the default, which pre-fills checkout.
type SavedAddress struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Label     string    `json:"label" db:"label"`
	FullName  string    `json:"fullName" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	ZipCode   string    `json:"zipCode" db:"zip_code"`
	IsDefault bool      `json:"isDefault" db:"is_default"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PasswordResetCode is a single-use 6-digit code mailed to the account
// email. Codes expire 10 minutes after creation.
type PasswordResetCode struct {
	ID        int64     `json:"-" db:"id"`
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"-" db:"code"`
	IsUsed    bool      `json:"-" db:"is_used"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// ResetCodeTTL is how long a reset code stays redeemable.
const ResetCodeTTL = 10 * time.Minute

// IsExpired reports whether the code's redemption window has passed.
func (r *PasswordResetCode) IsExpired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > ResetCodeTTL
}

// IsValid reports whether the code can still be redeemed.
func (r *PasswordResetCode) IsValid(now time.Time) bool {
	return !r.IsUsed && !r.IsExpired(now)
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
