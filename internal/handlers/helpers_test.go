package handlers

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[0-9A-F]{10}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		num := newOrderNumber()
		assert.Regexp(t, pattern, num)
		assert.False(t, seen[num], "order numbers must not repeat: %s", num)
		seen[num] = true
	}
}

func TestLookupDeliveryFeeCaseInsensitive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "city", "state", "fee_amount", "min_order_free_delivery", "estimated_days", "is_available"}).
		AddRow(1, "Malolos", "Bulacan", 150.0, 5000.0, "3-5 days", true)
	mock.ExpectQuery(`SELECT id, city, state, fee_amount`).
		WithArgs("MALOLOS", "bulacan").
		WillReturnRows(rows)

	fee, err := lookupDeliveryFee(db, "  MALOLOS ", "bulacan")
	require.NoError(t, err)
	require.NotNil(t, fee)
	assert.Equal(t, "Malolos", fee.City)
	assert.Equal(t, 150.0, fee.FeeAmount)
	assert.Equal(t, 5000.0, fee.MinOrderFreeDelivery)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupDeliveryFeeNoRowMeansFree(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, city, state, fee_amount`).
		WithArgs("Baguio", "Benguet").
		WillReturnRows(sqlmock.NewRows([]string{"id", "city", "state", "fee_amount", "min_order_free_delivery", "estimated_days", "is_available"}))

	fee, err := lookupDeliveryFee(db, "Baguio", "Benguet")
	require.NoError(t, err)
	assert.Nil(t, fee)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveDealForProductNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT d.id, d.title, d.deal_type`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "deal_type", "discount_percentage", "discount_amount", "badge_text"}))

	deal, err := activeDealForProduct(db, 7, time.Now())
	require.NoError(t, err)
	assert.Nil(t, deal)

	assert.NoError(t, mock.ExpectationsWereMet())
}
