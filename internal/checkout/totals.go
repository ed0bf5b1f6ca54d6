package checkout

import (
	"github.com/ceras-workshop/storefront-gateway/internal/cart"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

// OrderSummary carries the checkout totals in minor units so two-decimal
// dollar amounts never pick up floating drift.
type OrderSummary struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
}

// Summarize computes the order summary from the cart plus dollar-priced
// shipping and tax. Each line is rounded to cents before multiplying by
// quantity.
func Summarize(items []cart.Item, shippingDollars, taxDollars float64) OrderSummary {
	var subtotal int64
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal += domain.DollarsToCents(item.Price) * int64(qty)
	}
	return OrderSummary{
		SubtotalCents: subtotal,
		ShippingCents: domain.DollarsToCents(shippingDollars),
		TaxCents:      domain.DollarsToCents(taxDollars),
	}
}

func (s OrderSummary) TotalCents() int64 {
	return s.SubtotalCents + s.ShippingCents + s.TaxCents
}

func (s OrderSummary) TotalDollars() float64 {
	return float64(s.TotalCents()) / 100
}
