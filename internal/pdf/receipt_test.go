package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

func sampleOrder() (*models.Order, []models.OrderItem) {
	order := &models.Order{
		ID:            5,
		OrderNumber:   "ORD-ABCDEF1234",
		FullName:      "Juan dela Cruz",
		Email:         "juan@example.com",
		Phone:         "09170000000",
		Address:       "123 Mabini St",
		City:          "Malolos",
		State:         "Bulacan",
		ZipCode:       "3000",
		Total:         5150,
		ShippingCost:  150,
		Status:        models.OrderStatusShipped,
		PaymentMethod: models.PaymentCOD,
		CreatedAt:     time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
	}
	items := []models.OrderItem{
		{ProductID: 1, ProductName: "RTX 4070", Price: 2400, Quantity: 2},
		{ProductID: 2, ProductName: "Mechanical Keyboard", Price: 200, Quantity: 1},
	}
	return order, items
}

func TestGenerateOrderReceipt(t *testing.T) {
	order, items := sampleOrder()

	out, err := GenerateOrderReceipt(order, items)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateSalesReport(t *testing.T) {
	report := &SalesReport{
		PeriodLabel:  "Last 7 Days",
		StartDate:    time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TotalRevenue: 125000,
		TotalOrders:  18,
		ItemsSold:    42,
		AverageOrder: 6944.44,
		TopProducts: []ProductSales{
			{Name: "RTX 4070", Units: 6, Revenue: 84000},
			{Name: "Mechanical Keyboard", Units: 12, Revenue: 2400},
		},
		DailyRevenue: []DailyPoint{
			{Date: "2025-06-09", Orders: 3, Revenue: 21000},
			{Date: "2025-06-10", Orders: 5, Revenue: 35000},
		},
	}

	out, err := GenerateSalesReport(report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
