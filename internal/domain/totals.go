package domain

const (
	// A 20% discount applies once more than one distinct item is in the cart.
	DiscountRate      = 0.20
	DiscountThreshold = 1
)

type Totals struct {
	Subtotal         float64 `json:"subtotal"`
	ItemCount        int     `json:"item_count"`
	DiscountEligible bool    `json:"discount_eligible"`
	Discount         float64 `json:"discount"`
	Total            float64 `json:"total"`
}

// Totals is derived from the current items on every call, never stored.
// Discount is kept at full precision; rounding happens at display time only.
func (c *Cart) Totals() Totals {
	t := Totals{ItemCount: len(c.Items)}
	for _, item := range c.Items {
		t.Subtotal += item.Price
	}
	t.DiscountEligible = t.ItemCount > DiscountThreshold
	if t.DiscountEligible {
		t.Discount = t.Subtotal * DiscountRate
	}
	t.Total = t.Subtotal - t.Discount
	return t
}
