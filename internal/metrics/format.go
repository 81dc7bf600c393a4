package metrics

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// FormatCurrency renders a GBP amount for display. Values of £1000 and
// above abbreviate to K/M with one decimal.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) {
		return "£0"
	}
	switch {
	case math.Abs(v) >= 1000000:
		return fmt.Sprintf("£%.1fM", v/1000000)
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("£%.1fK", v/1000)
	default:
		return fmt.Sprintf("£%.2f", v)
	}
}

// FormatPercentage renders a 0-100 scale value with a trailing %.
func FormatPercentage(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "0%"
	}
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// FormatNumber renders a whole number with thousands separators.
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "0"
	}
	return printer.Sprintf("%d", int64(v))
}
