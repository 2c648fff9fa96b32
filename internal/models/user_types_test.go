package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetCodeExpiry(t *testing.T) {
	created := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	code := PasswordResetCode{Code: "123456", CreatedAt: created}

	assert.True(t, code.IsValid(created.Add(9*time.Minute)))
	assert.True(t, code.IsValid(created.Add(10*time.Minute)))
	assert.False(t, code.IsValid(created.Add(11*time.Minute)))
	assert.True(t, code.IsExpired(created.Add(11*time.Minute)))
}

func TestPasswordResetCodeSingleUse(t *testing.T) {
	code := PasswordResetCode{Code: "123456", CreatedAt: time.Now()}
	assert.True(t, code.IsValid(time.Now()))

	code.IsUsed = true
	assert.False(t, code.IsValid(time.Now()))
}

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	assert.NoError(t, p.Set("correct horse battery"))

	match, err := p.Matches("correct horse battery")
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = p.Matches("wrong password")
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Juan", LastName: "dela Cruz"}
	assert.Equal(t, "Juan dela Cruz", u.FullName())

	assert.Equal(t, "Juan", (&User{FirstName: "Juan"}).FullName())
	assert.Equal(t, "dela Cruz", (&User{LastName: "dela Cruz"}).FullName())
}
