package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shippingRequest(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/shipping/calculate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func checkoutRequest(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", int64(1))
	return c, w
}

// Checking out two cart lines must price them at the live discount,
// charge the destination's delivery fee, snapshot the order and remove
// exactly the purchased cart items.
func TestCheckoutCartSubsetPricesAndClearsPurchasedLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM carts WHERE user_id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	// First line carries a live 25% deal, second sells at list price.
	mock.ExpectQuery(`FROM cart_items ci`).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "quantity"}).
			AddRow(1, "RTX 4070", 2000.0, 10, 2))
	mock.ExpectQuery(`FROM deals d`).
		WithArgs(int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(activeDealRows().AddRow(9, "GPU Week", "percentage", 25.0, nil, ""))
	mock.ExpectQuery(`FROM cart_items ci`).
		WithArgs(int64(7), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "quantity"}).
			AddRow(2, "Mechanical Keyboard", 250.0, 5, 1))
	mock.ExpectQuery(`FROM deals d`).
		WithArgs(int64(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(activeDealRows())

	mock.ExpectQuery(`FROM delivery_fees`).
		WithArgs("Malolos", "Bulacan").
		WillReturnRows(deliveryFeeRows())

	// subtotal 2 x 1500 + 250 = 3250, below the 5000 threshold so the
	// 150 fee applies: total 3400
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(sqlmock.AnyArg(), int64(1), "Juan dela Cruz", "juan@example.com", "09170000000",
			"123 Mabini St", "Malolos", "Bulacan", "3000", 3400.0, 150.0, "cod",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(55), int64(1), "RTX 4070", 1500.0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(55), int64(2), "Mechanical Keyboard", 250.0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Only the purchased lines leave the cart
	mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \? AND product_id = \?`).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \? AND product_id = \?`).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	h := newTestHandlers(db)
	c, w := checkoutRequest(t, `{"fullName":"Juan dela Cruz","email":"juan@example.com","phone":"09170000000",
		"address":"123 Mabini St","city":"Malolos","state":"Bulacan","zipCode":"3000",
		"paymentMethod":"cod","productIds":[1,2]}`)
	h.Checkout(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"subtotal":3250`)
	assert.Contains(t, body, `"shippingCost":150`)
	assert.Contains(t, body, `"total":3400`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Buy-now never reads or mutates the cart; the ordered expectations
// would fail on any carts or cart_items statement.
func TestCheckoutBuyNowLeavesCartUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM products WHERE id = \? AND is_active = 1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
			AddRow(3, "650W PSU", 3000.0, 8))
	mock.ExpectQuery(`FROM deals d`).
		WithArgs(int64(3), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(activeDealRows())

	// Unlisted destination ships free
	mock.ExpectQuery(`FROM delivery_fees`).
		WithArgs("Baguio", "Benguet").
		WillReturnRows(sqlmock.NewRows([]string{"id", "city", "state", "fee_amount", "min_order_free_delivery", "estimated_days", "is_available"}))

	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(sqlmock.AnyArg(), int64(1), "Juan dela Cruz", "juan@example.com", "09170000000",
			"45 Session Rd", "Baguio", "Benguet", "2600", 3000.0, 0.0, "gcash",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(77), int64(3), "650W PSU", 3000.0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	h := newTestHandlers(db)
	c, w := checkoutRequest(t, `{"fullName":"Juan dela Cruz","email":"juan@example.com","phone":"09170000000",
		"address":"45 Session Rd","city":"Baguio","state":"Benguet","zipCode":"2600",
		"paymentMethod":"gcash","buyNow":{"productId":3,"quantity":1}}`)
	h.Checkout(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"subtotal":3000`)
	assert.Contains(t, body, `"shippingCost":0`)
	assert.Contains(t, body, `"total":3000`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func deliveryFeeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "city", "state", "fee_amount", "min_order_free_delivery", "estimated_days", "is_available"}).
		AddRow(1, "Malolos", "Bulacan", 150.0, 5000.0, "3-5 days", true)
}

func TestCalculateShippingChargesBelowThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM delivery_fees`).
		WithArgs("Malolos", "Bulacan").
		WillReturnRows(deliveryFeeRows())

	h := newTestHandlers(db)
	c, w := shippingRequest(t, `{"city":"Malolos","state":"Bulacan","subtotal":3000}`)
	h.CalculateShipping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"shippingCost":150`)
	assert.Contains(t, body, `"freeShipping":false`)
	assert.Contains(t, body, `"freeDeliveryThreshold":5000`)
	assert.Contains(t, body, `"estimatedDays":"3-5 days"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculateShippingWaivesAtThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM delivery_fees`).
		WithArgs("Malolos", "Bulacan").
		WillReturnRows(deliveryFeeRows())

	h := newTestHandlers(db)
	c, w := shippingRequest(t, `{"city":"Malolos","state":"Bulacan","subtotal":5200}`)
	h.CalculateShipping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"shippingCost":0`)
	assert.Contains(t, body, `"freeShipping":true`)
	assert.NotContains(t, body, "freeDeliveryThreshold")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalculateShippingUnlistedLocationShipsFree(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM delivery_fees`).
		WithArgs("Baguio", "Benguet").
		WillReturnRows(sqlmock.NewRows([]string{"id", "city", "state", "fee_amount", "min_order_free_delivery", "estimated_days", "is_available"}))

	h := newTestHandlers(db)
	c, w := shippingRequest(t, `{"city":"Baguio","state":"Benguet","subtotal":1000}`)
	h.CalculateShipping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"shippingCost":0`)
	assert.Contains(t, body, `"freeShipping":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
