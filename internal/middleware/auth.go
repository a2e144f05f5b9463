package middleware

import (
	"net/http"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
)

// TokenVerifier turns a raw bearer token into an identity.
type TokenVerifier interface {
	Verify(raw string) (identity.Identity, error)
}

// Authenticate attaches the caller's identity. Requests without an
// Authorization header continue as Anonymous; a header that does not carry
// a valid token is rejected with 401.
func Authenticate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity.Anonymous)))
				return
			}

			raw, ok := identity.BearerToken(h)
			if !ok {
				WriteError(w, r, http.StatusUnauthorized, "malformed authorization header")
				return
			}
			id, err := v.Verify(raw)
			if err != nil {
				WriteError(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole lets the request through when the caller holds any of roles.
// Anonymous callers get 401, signed-in callers without the role get 403.
func RequireRole(roles ...identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentity(r.Context())
			if !id.IsAuthenticated() {
				WriteError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if id.Has(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, r, http.StatusForbidden, "insufficient role")
		})
	}
}

// RequireAuthenticated only checks that a valid token was presented.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetIdentity(r.Context()).IsAuthenticated() {
			WriteError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
