package view

import (
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
)

type MenuCard struct {
	menu.Item
	PriceDisplay string `json:"priceDisplay"`
	CanAddToCart bool   `json:"canAddToCart"`
	CanEdit      bool   `json:"canEdit"`
}

func MenuCards(items []menu.Item, id identity.Identity, adminMode bool) []MenuCard {
	canOrder := CanOrder(id) && !adminMode
	canEdit := adminMode && id.Has(identity.RoleAdmin)

	out := make([]MenuCard, 0, len(items))
	for _, it := range items {
		out = append(out, MenuCard{
			Item:         it,
			PriceDisplay: it.Price.Display(),
			CanAddToCart: canOrder && it.Available,
			CanEdit:      canEdit,
		})
	}
	return out
}
