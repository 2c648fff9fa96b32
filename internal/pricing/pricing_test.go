package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func percentageDeal(pct float64) *models.Deal {
	return &models.Deal{
		DealType:           models.DealTypePercentage,
		DiscountPercentage: floatPtr(pct),
		Status:             models.DealStatusActive,
		StartDate:          time.Now().Add(-time.Hour),
		EndDate:            time.Now().Add(time.Hour),
	}
}

func fixedDeal(amount float64) *models.Deal {
	return &models.Deal{
		DealType:       models.DealTypeFixed,
		DiscountAmount: floatPtr(amount),
		Status:         models.DealStatusActive,
		StartDate:      time.Now().Add(-time.Hour),
		EndDate:        time.Now().Add(time.Hour),
	}
}

func TestFinalPriceNoDeal(t *testing.T) {
	assert.Equal(t, 1999.99, FinalPrice(1999.99, nil))
}

func TestFinalPricePercentage(t *testing.T) {
	// 33% off 1999.99 = 1339.9933 -> rounds to 1339.99
	assert.Equal(t, 1339.99, FinalPrice(1999.99, percentageDeal(33)))
	assert.Equal(t, 500.0, FinalPrice(1000, percentageDeal(50)))
}

func TestFinalPriceFixed(t *testing.T) {
	assert.Equal(t, 1500.0, FinalPrice(2000, fixedDeal(500)))

	// A discount bigger than the price floors at zero, never negative
	assert.Equal(t, 0.0, FinalPrice(300, fixedDeal(500)))
}

func TestFinalPriceBOGOAndBundleLeaveUnitPrice(t *testing.T) {
	bogo := &models.Deal{DealType: models.DealTypeBOGO}
	bundle := &models.Deal{DealType: models.DealTypeBundle}
	assert.Equal(t, 999.5, FinalPrice(999.5, bogo))
	assert.Equal(t, 999.5, FinalPrice(999.5, bundle))
}

func TestOriginalPrice(t *testing.T) {
	// With a discounting deal the list price becomes the strikethrough
	original := OriginalPrice(2000, nil, percentageDeal(10))
	if assert.NotNil(t, original) {
		assert.Equal(t, 2000.0, *original)
	}

	// Without a deal, old_price shows only when it beats the price
	original = OriginalPrice(1500, floatPtr(2000), nil)
	if assert.NotNil(t, original) {
		assert.Equal(t, 2000.0, *original)
	}
	assert.Nil(t, OriginalPrice(1500, floatPtr(1000), nil))
	assert.Nil(t, OriginalPrice(1500, nil, nil))
}

func TestSavings(t *testing.T) {
	assert.Equal(t, 200.0, Savings(2000, nil, percentageDeal(10)))
	assert.Equal(t, 500.0, Savings(1500, floatPtr(2000), nil))
	assert.Equal(t, 0.0, Savings(1500, nil, nil))

	// Oversized fixed discount: full price is the saving, not more
	assert.Equal(t, 300.0, Savings(300, nil, fixedDeal(500)))
}

func TestSavingsPercent(t *testing.T) {
	assert.Equal(t, 10, SavingsPercent(2000, nil, percentageDeal(10)))
	assert.Equal(t, 25, SavingsPercent(1500, floatPtr(2000), nil))
	assert.Equal(t, 0, SavingsPercent(1500, nil, nil))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 0.3, LineTotal(0.1, 3))
	assert.Equal(t, 3999.98, LineTotal(1999.99, 2))
	assert.Equal(t, 0.0, LineTotal(1999.99, 0))
}

func TestFormatPeso(t *testing.T) {
	assert.Equal(t, "₱5,200.00", FormatPeso(5200))
	assert.Equal(t, "₱150.00", FormatPeso(150))
	assert.Equal(t, "1,339,999.99", FormatPlain(1339999.99))
}
