package commons

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatNumber renders f with Indonesian digit grouping and at most three
// fraction digits, e.g. 280000 -> "280.000".
func FormatNumber(f float64) string {
	return idPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// FormatRupiah renders a per-kilogram price as shown on product cards.
func FormatRupiah(price decimal.Decimal) string {
	f, _ := price.Float64()
	return "Rp " + FormatNumber(f) + " / kg"
}
