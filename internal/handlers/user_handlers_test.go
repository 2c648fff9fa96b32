package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetCodeIsSixDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := newResetCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func addressUpdateContext(t *testing.T, addressID, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/v1/addresses/"+addressID, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: addressID}}
	c.Set("userID", int64(1))
	return c, w
}

// Every address update writes updated_at, so resubmitting an unchanged
// form still reports one affected row instead of a spurious not-found.
func TestUpdateAddressWritesTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE user_addresses`).
		WithArgs("Home", "Juan dela Cruz", "09170000000", "123 Mabini St",
			"Malolos", "Bulacan", "3000", false, sqlmock.AnyArg(), "9", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := newTestHandlers(db)
	c, w := addressUpdateContext(t, "9", `{"label":"Home","fullName":"Juan dela Cruz","phone":"09170000000",
		"address":"123 Mabini St","city":"Malolos","state":"Bulacan","zipCode":"3000","isDefault":false}`)
	h.UpdateAddress(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Address updated")
	assert.NoError(t, mock.ExpectationsWereMet())
}
