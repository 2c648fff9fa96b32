package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartGetContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	c.Set("userID", int64(1))
	return c, w
}

func activeDealRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "deal_type", "discount_percentage", "discount_amount", "badge_text"})
}

// The cart page totals must always equal the sum of quantity times the
// live discounted unit price, with savings tracked against list price.
func TestGetCartTotalsAcrossDiscountedLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM carts WHERE user_id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	// Two lines: the GPU carries a live 25% deal, the keyboard sells at
	// list price.
	mock.ExpectQuery(`FROM cart_items ci`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "image_url", "price", "old_price", "quantity", "stock"}).
			AddRow(1, "RTX 4070", "rtx-4070", nil, 2000.0, nil, 2, 10).
			AddRow(2, "Mechanical Keyboard", "mechanical-keyboard", nil, 250.0, nil, 1, 5))

	mock.ExpectQuery(`FROM deals d`).
		WithArgs(int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(activeDealRows().AddRow(9, "GPU Week", "percentage", 25.0, nil, ""))
	mock.ExpectQuery(`FROM deals d`).
		WithArgs(int64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(activeDealRows())

	h := newTestHandlers(db)
	c, w := cartGetContext(t)
	h.GetCart(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// 2 x 1500 (discounted) + 1 x 250 = 3250, saving 2 x 500
	assert.Contains(t, body, `"subtotal":3250`)
	assert.Contains(t, body, `"savings":1000`)
	assert.Contains(t, body, `"totalItems":3`)
	assert.Contains(t, body, `"lineTotal":3000`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartWithoutCartIsEmptyOK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM carts WHERE user_id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := newTestHandlers(db)
	c, w := cartGetContext(t)
	h.GetCart(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"subtotal":0`)
	assert.Contains(t, body, `"totalItems":0`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
