package cartsync

// Pricing holds the checkout constants. Tax is a flat rate, not derived from
// jurisdiction; orders at or above the free-shipping threshold ship free.
type Pricing struct {
	TaxRate               float64
	FreeShippingThreshold float64
	FlatShippingFee       float64
}

// DefaultPricing returns the storefront's configured constants.
func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:               0.15,
		FreeShippingThreshold: 500,
		FlatShippingFee:       99,
	}
}

// Totals is the checkout summary computed from the current line items.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals sums the cart. It is a pure function and invariant under
// any permutation of items.
func ComputeTotals(items []LineItem, pricing Pricing) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := subtotal * pricing.TaxRate

	shipping := pricing.FlatShippingFee
	if subtotal >= pricing.FreeShippingThreshold {
		shipping = 0
	}

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: subtotal + tax + shipping,
	}
}
