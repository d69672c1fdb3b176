package model

import "time"

// BasketItem is one product line in the user's basket.
type BasketItem struct {
	ID        string  `json:"id" db:"id"`
	ProductID int     `json:"product_id" db:"product_id"`
	Title     string  `json:"title" db:"title"`
	Price     float64 `json:"price" db:"price"`
	Count     int     `json:"count" db:"count"`
}

// Subtotal is price times count.
func (b BasketItem) Subtotal() float64 {
	return b.Price * float64(b.Count)
}

// BasketTotal sums every line of the basket.
func BasketTotal(items []BasketItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// Order is a placed purchase.
type Order struct {
	ID            string    `json:"id" db:"id"`
	ShippingID    int       `json:"shipping_id" db:"shipping_id"`
	ShippingTitle string    `json:"shipping_title" db:"shipping_title"`
	Total         float64   `json:"total" db:"total"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
