package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// OnRequest is shown when a product has no displayable price.
const OnRequest = "Tarif sur demande"

var printer = message.NewPrinter(language.French)

// Price renders an amount in euros the way the storefront shows it, grouped
// with French separators and without cents when they are zero.
func Price(amount float64) string {
	return printer.Sprintf("%v €", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// PriceOrRequest formats amount when ok, and returns OnRequest otherwise.
func PriceOrRequest(amount float64, ok bool) string {
	if !ok {
		return OnRequest
	}
	return Price(amount)
}
