package identity

import "strings"

// Role is the closed set of roles the storefront knows about. Every decision
// point switches over all four values.
type Role int

const (
	RoleAnonymous Role = iota
	RoleCliente
	RoleBarista
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAnonymous:
		return "anonymous"
	case RoleCliente:
		return "cliente"
	case RoleBarista:
		return "barista"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// ParseRole reads a role name from a token claim. Unrecognized names map to
// RoleAnonymous and ok is false.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cliente", "customer", "client":
		return RoleCliente, true
	case "barista":
		return RoleBarista, true
	case "admin", "administrator":
		return RoleAdmin, true
	default:
		return RoleAnonymous, false
	}
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }
