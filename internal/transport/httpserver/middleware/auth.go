package middleware

import (
	"context"
	"net/http"
	"strings"

	"mealplanner/internal/domain/session"
	"mealplanner/pkg/logger"
)

type Authenticator interface {
	Authenticate(token string) (*session.Identity, error)
}

// SessionAuth attaches the caller's identity snapshot to the request
// context. Requests without a usable token pass through anonymously;
// resolvers decide what needs an identity.
type SessionAuth struct {
	tokens Authenticator
	log    logger.Logger
}

type contextKey int

const identityKey contextKey = iota

func NewSessionAuth(tokens Authenticator, log logger.Logger) *SessionAuth {
	return &SessionAuth{tokens: tokens, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.tokens.Authenticate(token)
		if err != nil {
			a.log.Debug("auth: token rejected", "err", err, logger.RequestID(r.Context()))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithIdentity(ctx context.Context, identity *session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *session.Identity {
	identity, ok := ctx.Value(identityKey).(*session.Identity)
	if !ok || identity == nil || identity.UUID == "" {
		return nil
	}
	return identity
}
