package view

import "github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Nav lists the header links for id. Each role the user holds adds its own
// link, so a user with several roles sees all of them.
func Nav(id identity.Identity) []Link {
	if !id.IsAuthenticated() {
		return []Link{}
	}
	links := []Link{{Label: "Menú", Href: "/menu"}}
	if id.Has(identity.RoleCliente) {
		links = append(links, Link{Label: "Mis Pedidos", Href: "/mis-pedidos"})
	}
	if id.Has(identity.RoleBarista) {
		links = append(links, Link{Label: "Todos los Pedidos", Href: "/pedidos"})
	}
	if id.Has(identity.RoleAdmin) {
		links = append(links, Link{Label: "Administración", Href: "/admin"})
	}
	return links
}

// HomeRoute is where a user lands after signing in.
func HomeRoute(r identity.Role) string {
	switch r {
	case identity.RoleAdmin:
		return "/admin"
	case identity.RoleBarista:
		return "/pedidos"
	case identity.RoleCliente:
		return "/menu"
	case identity.RoleAnonymous:
		return "/"
	default:
		return "/"
	}
}

// CanOrder reports whether id may fill a cart and check out.
func CanOrder(id identity.Identity) bool {
	return id.Has(identity.RoleCliente)
}
