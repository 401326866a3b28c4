package view

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLogo is shown for records without a logo URL.
const DefaultLogo = "https://picsum.photos/seed/default/120/120"

// FormatTuition renders an amount with Russian digit grouping, e.g. "1 500 000".
func FormatTuition(amount int64) string {
	return message.NewPrinter(language.Russian).Sprintf("%d", amount)
}

// FormatRating renders a rating without trailing zeros.
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

func logoOrDefault(logo string) string {
	if logo == "" {
		return DefaultLogo
	}
	return logo
}
