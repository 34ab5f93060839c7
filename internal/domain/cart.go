package domain

import "time"

// Quantity is fixed at 1 per line item; the only way to change it is to
// remove the entry. See Cart.Totals for the pricing rules.
type CartItem struct {
	Product
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

func NewCartItem(p Product) CartItem {
	return CartItem{
		Product:  p,
		Quantity: 1,
		AddedAt:  time.Now(),
	}
}

type Cart struct {
	OwnerID   string     `json:"owner_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(ownerID string) *Cart {
	now := time.Now()
	return &Cart{
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) Contains(productID int64) bool {
	for _, item := range c.Items {
		if item.ID == productID {
			return true
		}
	}
	return false
}
