// Package chatbot answers storefront support questions by keyword matching
// against a bilingual FAQ table. It is pure logic so the scoring is easy to
// test without a server.
package chatbot

import (
	"fmt"
	"strings"
)

// Entry is one FAQ pair. Multi-word keywords outweigh single words when
// scoring, so "cash on delivery" beats a stray "delivery" hit. Dynamic
// names a server-side data source that replaces the canned answer.
type Entry struct {
	Question string
	Keywords []string
	Answer   string
	Dynamic  string
}

// DynamicShippingFees marks the entry whose answer is rebuilt from the
// delivery_fees table on every request.
const DynamicShippingFees = "shipping_fees"

// Fee is the slice of the delivery rate table the responder needs.
type Fee struct {
	City          string
	State         string
	Amount        float64
	FreeOver      float64
	EstimatedDays string
}

// Respond matches a customer message against the FAQ table and returns the
// best answer. The second return is false when nothing scored, in which
// case the caller may escalate (e.g. to a generative model) or show the
// returned default help text.
func Respond(message string, fees []Fee) (string, bool) {
	lower := strings.ToLower(message)

	var best *Entry
	highest := 0

	for i := range Entries {
		score := 0
		for _, keyword := range Entries[i].Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				// Multi-word keywords get a higher score
				score += len(strings.Fields(keyword))
			}
		}
		if score > highest {
			highest = score
			best = &Entries[i]
		}
	}

	if best != nil && highest >= 1 {
		if best.Dynamic == DynamicShippingFees {
			return shippingFeeAnswer(fees), true
		}
		return best.Answer, true
	}

	return DefaultReply, false
}

// shippingFeeAnswer renders the live rate table. Falls back to the generic
// explanation when no rates are configured yet.
func shippingFeeAnswer(fees []Fee) string {
	if len(fees) == 0 {
		return "Shipping fees vary by location! During checkout:\n1. Enter your complete address\n2. Shipping fee will be calculated automatically\n3. Based on your province/city\n\nFees are competitive and transparent! 📦✨"
	}

	var b strings.Builder
	b.WriteString("Here are our current shipping rates: 📦\n\n")
	for _, f := range fees {
		fmt.Fprintf(&b, "📍 %s, %s: ₱%.2f", f.City, f.State, f.Amount)
		if f.FreeOver > 0 {
			fmt.Fprintf(&b, " (FREE for orders ₱%.2f and up!)", f.FreeOver)
		}
		if f.EstimatedDays != "" {
			fmt.Fprintf(&b, " (%s)", f.EstimatedDays)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nLocations not listed ship free. Enter your address at checkout and the fee is calculated automatically! ✨")
	return b.String()
}
