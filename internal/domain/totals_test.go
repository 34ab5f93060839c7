package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals_EmptyCart(t *testing.T) {
	c := NewCart("s1")

	totals := c.Totals()

	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.False(t, totals.DiscountEligible)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Total)
}

func TestTotals_SingleItem_NoDiscount(t *testing.T) {
	c := NewCart("s1")
	c.Items = append(c.Items, NewCartItem(Product{ID: 1, Name: "#42 Widget", Price: 10.00}))

	totals := c.Totals()

	assert.Equal(t, 1, totals.ItemCount)
	assert.Equal(t, 10.00, totals.Subtotal)
	assert.False(t, totals.DiscountEligible)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 10.00, totals.Total)
}

func TestTotals_TwoItems_TwentyPercentDiscount(t *testing.T) {
	c := NewCart("s1")
	c.Items = append(c.Items,
		NewCartItem(Product{ID: 1, Name: "#42 Widget", Price: 10.00}),
		NewCartItem(Product{ID: 2, Name: "#7 Gadget", Price: 20.00}),
	)

	totals := c.Totals()

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 30.00, totals.Subtotal)
	assert.True(t, totals.DiscountEligible)
	assert.InDelta(t, 6.00, totals.Discount, 1e-9)
	assert.InDelta(t, 24.00, totals.Total, 1e-9)
}

func TestTotals_DiscountIsExactlyRateTimesSubtotal(t *testing.T) {
	c := NewCart("s1")
	prices := []float64{3.33, 19.99, 0, 42.01}
	for i, p := range prices {
		c.Items = append(c.Items, NewCartItem(Product{ID: int64(i + 1), Price: p}))
	}

	totals := c.Totals()

	var subtotal float64
	for _, p := range prices {
		subtotal += p
	}
	assert.Equal(t, subtotal, totals.Subtotal)
	assert.Equal(t, subtotal*DiscountRate, totals.Discount)
	assert.Equal(t, subtotal-subtotal*DiscountRate, totals.Total)
}

func TestNewCartItem_QuantityIsAlwaysOne(t *testing.T) {
	item := NewCartItem(Product{ID: 9, Name: "#9 Thing", Price: 5})
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, int64(9), item.ID)
}

func TestContains(t *testing.T) {
	c := NewCart("s1")
	c.Items = append(c.Items, NewCartItem(Product{ID: 1}))

	assert.True(t, c.Contains(1))
	assert.False(t, c.Contains(2))
}
