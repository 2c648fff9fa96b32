package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pesoPrinter = message.NewPrinter(language.English)

// FormatPeso renders an amount with the peso sign and comma grouping,
// e.g. 5200 -> "₱5,200.00". For PDF output use FormatPlain; the built-in
// PDF fonts have no ₱ glyph.
func FormatPeso(amount float64) string {
	return "₱" + FormatPlain(amount)
}

// FormatPlain renders an amount with comma grouping and two decimals but
// no currency sign.
func FormatPlain(amount float64) string {
	return pesoPrinter.Sprintf("%.2f", amount)
}
