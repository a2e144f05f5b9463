package middleware

import (
	"context"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/session"
)

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxIdentity      ctxKey = "identity"
	ctxSession       ctxKey = "session"
)

func GetCorrelationID(ctx context.Context) string {
	if v := ctx.Value(ctxCorrelationID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, ctxCorrelationID, cid)
}

// GetIdentity returns the caller's identity, Anonymous if none was attached.
func GetIdentity(ctx context.Context) identity.Identity {
	if id, ok := ctx.Value(ctxIdentity).(identity.Identity); ok {
		return id
	}
	return identity.Anonymous
}

func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// GetSession returns the session state attached by Session, or nil.
func GetSession(ctx context.Context) *session.State {
	st, _ := ctx.Value(ctxSession).(*session.State)
	return st
}

func WithSession(ctx context.Context, st *session.State) context.Context {
	return context.WithValue(ctx, ctxSession, st)
}
