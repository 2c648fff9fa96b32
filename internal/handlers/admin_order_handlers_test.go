package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jcgamayo/pcbulacan-golang/internal/email"
	"github.com/jcgamayo/pcbulacan-golang/internal/notify"
)

func newTestHandlers(db *sql.DB) *Handlers {
	logger := zap.NewNop()
	return &Handlers{
		DB:       db,
		Logger:   logger,
		Mailer:   email.NewMailer("", 0, "", "", "", logger),
		Notifier: notify.New(db, nil, logger),
	}
}

func statusUpdateContext(t *testing.T, orderID, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/v1/admin/orders/"+orderID+"/status", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: orderID}}
	c.Set("userID", int64(1))
	c.Set("isStaff", true)
	return c, w
}

func orderRow(id int64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "order_number", "user_id", "full_name", "email", "phone", "address", "city", "state", "zip_code",
		"total", "shipping_cost", "status", "payment_method", "deal_usage_counted", "created_at", "updated_at",
	}).AddRow(id, "ORD-ABCDEF1234", 42, "Juan dela Cruz", "juan@example.com", "09170000000",
		"123 Mabini St", "Malolos", "Bulacan", "3000",
		5150.0, 150.0, status, "cod", false, now, now)
}

func TestUpdateOrderStatusRejectsIllegalMove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM orders WHERE id = \?`).
		WithArgs("5").
		WillReturnRows(orderRow(5, "pending"))

	h := newTestHandlers(db)
	c, w := statusUpdateContext(t, "5", `{"status":"shipped"}`)
	h.UpdateOrderStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "Cannot move order from Pending to Shipped")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShipOrderAbortsOnAnyShortfall(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM orders WHERE id = \?`).
		WithArgs("5").
		WillReturnRows(orderRow(5, "processing"))

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "quantity", "stock"}).
			AddRow(1, "RTX 4070", 3, 5).
			AddRow(2, "Mechanical Keyboard", 2, 1))
	mock.ExpectRollback()

	h := newTestHandlers(db)
	c, w := statusUpdateContext(t, "5", `{"status":"shipped"}`)
	h.UpdateOrderStatus(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough stock for Mechanical Keyboard. Only 1 left.")
	// The first line had enough stock; nothing may be decremented anyway
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShipOrderDecrementsStockAndCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM orders WHERE id = \?`).
		WithArgs("5").
		WillReturnRows(orderRow(5, "processing"))

	mock.ExpectBegin()
	// Stocks stay comfortably above the restock threshold so no low-stock
	// fan-out fires after commit.
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "quantity", "stock"}).
			AddRow(1, "RTX 4070", 3, 50).
			AddRow(2, "Mechanical Keyboard", 2, 40))
	mock.ExpectExec(`UPDATE products SET stock = stock - \?`).
		WithArgs(3, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE products SET stock = stock - \?`).
		WithArgs(2, sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders SET status = \?`).
		WithArgs("shipped", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Post-commit fan-out: the customer notification insert, then the
	// emailed receipt loads the order lines.
	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`FROM order_items WHERE order_id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "price", "quantity"}).
			AddRow(10, 5, 1, "RTX 4070", 1500.0, 3).
			AddRow(11, 5, 2, "Mechanical Keyboard", 250.0, 2))

	h := newTestHandlers(db)
	c, w := statusUpdateContext(t, "5", `{"status":"shipped"}`)
	h.UpdateOrderStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "has been shipped")
	assert.NotContains(t, w.Body.String(), "warning")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A receipt failure after commit must not fail the shipment; the reply
// stays a success but carries a warning.
func TestShipOrderWarnsWhenReceiptFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM orders WHERE id = \?`).
		WithArgs("5").
		WillReturnRows(orderRow(5, "processing"))

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "quantity", "stock"}).
			AddRow(1, "RTX 4070", 3, 50))
	mock.ExpectExec(`UPDATE products SET stock = stock - \?`).
		WithArgs(3, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders SET status = \?`).
		WithArgs("shipped", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Loading the lines for the receipt fails post-commit
	mock.ExpectQuery(`FROM order_items WHERE order_id = \?`).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))

	h := newTestHandlers(db)
	c, w := statusUpdateContext(t, "5", `{"status":"shipped"}`)
	h.UpdateOrderStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, "has been shipped")
	assert.Contains(t, body, "receipt email could not be sent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusPendingToProcessing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM orders WHERE id = \?`).
		WithArgs("5").
		WillReturnRows(orderRow(5, "pending"))
	mock.ExpectExec(`UPDATE orders SET status = \?`).
		WithArgs("processing", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := newTestHandlers(db)
	c, w := statusUpdateContext(t, "5", `{"status":"processing"}`)
	h.UpdateOrderStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
