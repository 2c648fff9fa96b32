package pricing

import "github.com/jcgamayo/pcbulacan-golang/internal/models"

// ShippingCost applies the delivery fee rule for a checkout. A nil fee
// means the location has no configured rate and ships free. A configured
// rate is waived once the merchandise subtotal reaches the free-delivery
// threshold (a zero threshold never waives).
func ShippingCost(subtotal float64, fee *models.DeliveryFee) float64 {
	if fee == nil {
		return 0
	}
	if fee.MinOrderFreeDelivery > 0 && subtotal >= fee.MinOrderFreeDelivery {
		return 0
	}
	return fee.FeeAmount
}
