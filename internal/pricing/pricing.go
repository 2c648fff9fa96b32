// Package pricing computes the price a customer actually pays. All money
// math runs through decimals and rounds to centavos once, at the end, so a
// 33% discount on ₱1,999.99 comes out the same everywhere it is shown.
package pricing

import (
	"github.com/jcgamayo/pcbulacan-golang/internal/models"
	"github.com/shopspring/decimal"
)

// FinalPrice returns the price after applying the live deal, if any.
// Percentage deals take a cut of the list price; fixed deals subtract a
// flat amount, floored at zero. BOGO and bundle deals never change the
// unit price.
func FinalPrice(price float64, deal *models.Deal) float64 {
	if deal == nil {
		return round2(decimal.NewFromFloat(price))
	}

	p := decimal.NewFromFloat(price)

	switch deal.DealType {
	case models.DealTypePercentage:
		if deal.DiscountPercentage != nil {
			pct := decimal.NewFromFloat(*deal.DiscountPercentage)
			discount := p.Mul(pct).Div(decimal.NewFromInt(100))
			return round2(p.Sub(discount))
		}
	case models.DealTypeFixed:
		if deal.DiscountAmount != nil {
			discounted := p.Sub(decimal.NewFromFloat(*deal.DiscountAmount))
			if discounted.IsNegative() {
				return 0
			}
			return round2(discounted)
		}
	}

	return round2(p)
}

// OriginalPrice returns the strikethrough price to show next to the final
// price, or nil when there is nothing to cross out.
func OriginalPrice(price float64, oldPrice *float64, deal *models.Deal) *float64 {
	if deal != nil && (deal.DealType == models.DealTypePercentage || deal.DealType == models.DealTypeFixed) {
		p := price
		return &p
	}
	if oldPrice != nil && *oldPrice > price {
		return oldPrice
	}
	return nil
}

// Savings returns how much the customer saves against the original price.
func Savings(price float64, oldPrice *float64, deal *models.Deal) float64 {
	original := OriginalPrice(price, oldPrice, deal)
	if original == nil {
		return 0
	}
	saved := decimal.NewFromFloat(*original).Sub(decimal.NewFromFloat(FinalPrice(price, deal)))
	if saved.IsNegative() {
		return 0
	}
	return round2(saved)
}

// SavingsPercent returns the savings as a whole-number percentage.
func SavingsPercent(price float64, oldPrice *float64, deal *models.Deal) int {
	original := OriginalPrice(price, oldPrice, deal)
	if original == nil || *original <= 0 {
		return 0
	}
	saved := decimal.NewFromFloat(Savings(price, oldPrice, deal))
	pct := saved.Div(decimal.NewFromFloat(*original)).Mul(decimal.NewFromInt(100))
	return int(pct.IntPart())
}

// LineTotal multiplies a unit price by a quantity at centavo precision.
func LineTotal(price float64, qty int) float64 {
	return round2(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
