package view

import "github.com/AgustinVitali/Frontend-Cafeteria/internal/cart"

type CartLine struct {
	cart.Line
	PriceDisplay string `json:"priceDisplay"`
	Subtotal     string `json:"subtotal"`
}

type Cart struct {
	Lines        []CartLine `json:"lines"`
	ItemCount    int        `json:"itemCount"`
	Total        string     `json:"total"`
	TotalDisplay string     `json:"totalDisplay"`
	CanCheckout  bool       `json:"canCheckout"`
}

func NewCart(c *cart.Cart) Cart {
	lines := make([]CartLine, 0, c.Len())
	for _, l := range c.Lines() {
		lines = append(lines, CartLine{
			Line:         l,
			PriceDisplay: l.Price.Display(),
			Subtotal:     l.Subtotal().Display(),
		})
	}
	total := c.Total()
	return Cart{
		Lines:        lines,
		ItemCount:    c.ItemCount(),
		Total:        total.String(),
		TotalDisplay: total.Display(),
		CanCheckout:  !c.IsEmpty(),
	}
}
