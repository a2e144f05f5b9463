package dto

import "github.com/AgustinVitali/Frontend-Cafeteria/internal/view"

type AddCartItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	// Quantity defaults to 1 when omitted.
	Quantity *int   `json:"quantity,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateCartItemRequest changes quantity, notes or both.
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type CheckoutResponse struct {
	Order view.OrderCard `json:"order"`
	Cart  view.Cart      `json:"cart"`
}
