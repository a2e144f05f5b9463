package order

import (
	"time"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
)

type Item struct {
	ID           string      `json:"id"`
	MenuItemID   string      `json:"menuItemId"`
	MenuItemName string      `json:"menuItemName"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
	Notes        string      `json:"notes,omitempty"`
}

func (i Item) Subtotal() money.Money { return i.Price.Mul(i.Quantity) }

// Order is the local copy of a server-side order. Status is always the
// normalized state; RawStatus keeps what the service actually sent.
type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customerId"`
	CustomerName  string      `json:"customerName"`
	UserID        string      `json:"userId,omitempty"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	Items         []Item      `json:"items"`
	Total         money.Money `json:"total"`
	Status        Status      `json:"status"`
	RawStatus     string      `json:"rawStatus,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// CustomerDisplay is the best available name for the customer.
func (o *Order) CustomerDisplay() string {
	switch {
	case o.CustomerName != "":
		return o.CustomerName
	case o.UserID != "":
		return o.UserID
	default:
		return "Desconocido"
	}
}
