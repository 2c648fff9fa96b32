package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondMatchesKeyword(t *testing.T) {
	answer, matched := Respond("What payment methods do you accept?", nil)
	assert.True(t, matched)
	assert.Contains(t, answer, "Cash on Delivery (COD)")
	assert.Contains(t, answer, "GCash")
}

func TestRespondIsCaseInsensitive(t *testing.T) {
	answer, matched := Respond("DO YOU SHIP NATIONWIDE???", nil)
	assert.True(t, matched)
	assert.Contains(t, answer, "all provinces in the Philippines")
}

func TestRespondTagalog(t *testing.T) {
	answer, matched := Respond("paano mag-order ng GPU?", nil)
	assert.True(t, matched)
	assert.Contains(t, answer, "Create account or login")
}

func TestRespondMultiWordKeywordsOutweighSingleWords(t *testing.T) {
	// "cash on delivery" scores 3 for the COD entry; "delivery" alone
	// also brushes other entries but cannot outscore the phrase.
	answer, matched := Respond("do you take cash on delivery?", nil)
	assert.True(t, matched)
	assert.Contains(t, answer, "Cash on Delivery is available nationwide")
}

func TestRespondNoMatchReturnsDefault(t *testing.T) {
	answer, matched := Respond("qwertyuiop zxcvbnm", nil)
	assert.False(t, matched)
	assert.Equal(t, DefaultReply, answer)
}

func TestRespondDynamicShippingFees(t *testing.T) {
	fees := []Fee{
		{City: "Malolos", State: "Bulacan", Amount: 150, FreeOver: 5000, EstimatedDays: "3-5 days"},
		{City: "Quezon City", State: "Metro Manila", Amount: 200},
	}

	answer, matched := Respond("magkano ang delivery?", fees)
	assert.True(t, matched)
	assert.Contains(t, answer, "Malolos, Bulacan: ₱150.00")
	assert.Contains(t, answer, "FREE for orders ₱5000.00 and up!")
	assert.Contains(t, answer, "(3-5 days)")
	assert.Contains(t, answer, "Quezon City, Metro Manila: ₱200.00")
	assert.NotContains(t, answer, "Quezon City, Metro Manila: ₱200.00 (FREE")
}

func TestRespondDynamicShippingFeesEmptyTable(t *testing.T) {
	answer, matched := Respond("how much is the shipping fee", nil)
	assert.True(t, matched)
	assert.Contains(t, answer, "Shipping fees vary by location")
}
