package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/session"
)

const SessionCookie = "cafe_session"

type SessionOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Session resolves the browser session from its cookie, issuing a new one
// when the cookie is missing or not a uuid, and binds it to the signed-in
// user. It must run after Authenticate.
func Session(store *session.Store, opts SessionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(opts.MaxAge.Seconds()),
			})

			st := store.Get(id)
			st.Lock()
			st.BindOwner(GetIdentity(r.Context()).User.ID)
			st.Unlock()

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), st)))
		})
	}
}
