package handlers

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDealUsageCountsEachDealOncePerOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	placedAt := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, created_at FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(100, placedAt).
			AddRow(101, placedAt.Add(time.Hour)))

	// Order 100 bought products covered by two deals. Two line items per
	// deal still count once thanks to DISTINCT.
	mock.ExpectQuery(`SELECT DISTINCT d.id`).
		WithArgs(int64(100), placedAt, placedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7).AddRow(9))
	mock.ExpectExec(`UPDATE deals SET current_uses = current_uses \+ 1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE deals SET current_uses = current_uses \+ 1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders SET deal_usage_counted = 1`).
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Order 101 used no deals but is still flagged so it is never
	// rescanned.
	mock.ExpectQuery(`SELECT DISTINCT d.id`).
		WithArgs(int64(101), placedAt.Add(time.Hour), placedAt.Add(time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE orders SET deal_usage_counted = 1`).
		WithArgs(int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandlers(db)
	counted, err := h.ReconcileDealUsage()
	require.NoError(t, err)
	assert.Equal(t, 2, counted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileDealUsageIdempotentWhenNothingPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Flagged orders never come back from the pending scan, so a re-run
	// touches nothing.
	mock.ExpectQuery(`SELECT id, created_at FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	h := newTestHandlers(db)
	counted, err := h.ReconcileDealUsage()
	require.NoError(t, err)
	assert.Equal(t, 0, counted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshDealStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE deals SET status = 'active'`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE deals SET status = 'expired'`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := newTestHandlers(db)
	require.NoError(t, h.RefreshDealStatuses())
	assert.NoError(t, mock.ExpectationsWereMet())
}
