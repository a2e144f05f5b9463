package identity

// User is the signed-in person as described by the identity provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
}

// Identity is what the authentication middleware attaches to a request.
// Credential is the raw bearer token, forwarded as-is to the order service.
type Identity struct {
	User       User
	Credential string
}

// Anonymous is the identity of a request without a bearer token.
var Anonymous = Identity{}

func (i Identity) IsAuthenticated() bool { return i.Credential != "" }

func (u User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// PrimaryRole picks the role that decides which screens a user lands on:
// admin first, then barista, then cliente.
func (i Identity) PrimaryRole() Role {
	if !i.IsAuthenticated() {
		return RoleAnonymous
	}
	for _, r := range []Role{RoleAdmin, RoleBarista, RoleCliente} {
		if i.User.HasRole(r) {
			return r
		}
	}
	return RoleAnonymous
}

// IsStaff reports whether the user may manage orders.
func (i Identity) IsStaff() bool {
	if !i.IsAuthenticated() {
		return false
	}
	return i.User.HasRole(RoleAdmin) || i.User.HasRole(RoleBarista)
}

func (i Identity) Has(r Role) bool {
	if r == RoleAnonymous {
		return true
	}
	return i.IsAuthenticated() && i.User.HasRole(r)
}
