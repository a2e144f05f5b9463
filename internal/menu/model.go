package menu

import (
	"errors"
	"strings"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
)

// Item is a read-only snapshot of a catalog entry. Items are created, updated
// and deleted by the remote service only.
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       money.Money `json:"price"`
	Category    string      `json:"category"`
	Available   bool        `json:"available"`
	Image       string      `json:"image,omitempty"`
}

var (
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrPriceNotPositive    = errors.New("price must be greater than 0")
)

// Draft is the admin form payload for creating or replacing a menu item.
type Draft struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       money.Money `json:"price"`
	Category    string      `json:"category"`
	Available   bool        `json:"available"`
	Image       string      `json:"image,omitempty"`
}

// Validate reports every field problem at once so a form can show them together.
func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	if !d.Price.IsPositive() {
		errs = append(errs, ErrPriceNotPositive)
	}
	if strings.TrimSpace(d.Category) == "" {
		errs = append(errs, ErrCategoryRequired)
	}
	return errors.Join(errs...)
}

// Available filters a listing down to the items a customer may order.
func Available(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the item with the given id from a listing.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
