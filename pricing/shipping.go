// Package pricing holds the one shipping rule every surface must share.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the valley subtotal at which shipping is waived.
	FreeShippingThreshold = decimal.NewFromInt(2000)
	// FlatShippingFee is charged on every other non-empty order, in NPR.
	FlatShippingFee = decimal.NewFromInt(150)
)

var valleyCities = map[string]struct{}{
	"kathmandu": {},
	"bhaktapur": {},
	"lalitpur":  {},
}

// Breakdown is what every price summary shows.
type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// IsValleyCity reports whether city qualifies for free shipping above the threshold.
func IsValleyCity(city string) bool {
	_, ok := valleyCities[strings.ToLower(strings.TrimSpace(city))]
	return ok
}

// ComputeShipping returns the shipping fee for a subtotal delivered to city.
func ComputeShipping(subtotal decimal.Decimal, city string) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	if IsValleyCity(city) && subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// Summarize applies ComputeShipping and adds it to the subtotal.
func Summarize(subtotal decimal.Decimal, city string) Breakdown {
	shipping := ComputeShipping(subtotal, city)
	return Breakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
