package notify

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

func TestLowStockIgnoresHealthyAndEmptyStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n := New(db, nil, zap.NewNop())

	// Above the threshold and fully drained both skip the alert, so the
	// mock sees no queries at all.
	n.LowStock(context.Background(), 1, "RTX 4070", 11)
	n.LowStock(context.Background(), 1, "RTX 4070", 0)
	n.LowStock(context.Background(), 1, "RTX 4070", -3)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLowStockAlertsStaffOnceWithin24Hours(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n := New(db, nil, zap.NewNop())

	// First alert: no recent notification, so staff get the broadcast.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).
		WithArgs(models.NotifyLowStock, int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id FROM users WHERE is_active = 1 AND is_staff = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(1, 2))

	n.LowStock(context.Background(), 3, "RTX 4070", 4)

	// Second alert inside the window is deduped before any broadcast.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).
		WithArgs(models.NotifyLowStock, int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n.LowStock(context.Background(), 3, "RTX 4070", 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}
