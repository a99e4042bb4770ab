package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"mealplanner/internal/domain/session"
	"mealplanner/pkg/logger"
)

type fakeAuthenticator struct {
	tokens map[string]*session.Identity
	seen   []string
}

func (f *fakeAuthenticator) Authenticate(token string) (*session.Identity, error) {
	f.seen = append(f.seen, token)
	identity, ok := f.tokens[token]
	if !ok {
		return nil, session.ErrInvalidToken
	}
	return identity, nil
}

func serve(t *testing.T, auth *SessionAuth, header string) *session.Identity {
	t.Helper()
	var got *session.Identity
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code, "requests are never rejected by the middleware")
	return got
}

func TestSessionAuth(t *testing.T) {
	ada := &session.Identity{UUID: "u1", Email: "ada@example.com"}
	tokens := &fakeAuthenticator{tokens: map[string]*session.Identity{"good": ada}}
	auth := NewSessionAuth(tokens, logger.NewNop())

	t.Run("valid bearer", func(t *testing.T) {
		assert.Equal(t, ada, serve(t, auth, "Bearer good"))
	})
	t.Run("scheme is case insensitive", func(t *testing.T) {
		assert.Equal(t, ada, serve(t, auth, "bearer good"))
	})
	t.Run("missing header", func(t *testing.T) {
		assert.Nil(t, serve(t, auth, ""))
	})
	t.Run("invalid token", func(t *testing.T) {
		assert.Nil(t, serve(t, auth, "Bearer forged"))
	})
	t.Run("wrong scheme", func(t *testing.T) {
		before := len(tokens.seen)
		assert.Nil(t, serve(t, auth, "Basic good"))
		assert.Len(t, tokens.seen, before)
	})
}

func TestIdentityFromContextIgnoresEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, IdentityFromContext(req.Context()))
	assert.Nil(t, IdentityFromContext(WithIdentity(req.Context(), &session.Identity{})))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	handler := NewCORS([]string{"http://localhost:3000", " "})(next)

	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	anyOrigin := NewCORS([]string{"*"})(next)
	rec = httptest.NewRecorder()
	anyOrigin.ServeHTTP(rec, req)
	assert.Equal(t, "http://evil.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
