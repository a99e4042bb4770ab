package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/internal/config"
	"mealplanner/internal/domain/session"
	"mealplanner/internal/transport/httpserver/graph"
	"mealplanner/internal/transport/httpserver/handler/common"
	authmw "mealplanner/internal/transport/httpserver/middleware"
	"mealplanner/pkg/logger"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}

type testServer struct {
	handler http.Handler
	codec   *session.Codec
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()
	log := logger.NewNop()

	codec, err := session.NewCodec("router-secret")
	require.NoError(t, err)

	schema, err := graph.NewSchema(graph.NewResolver(graph.Services{}, log))
	require.NoError(t, err)

	cfg := config.Config{CORSAllowedOrigins: []string{"http://localhost:3000"}}
	return &testServer{
		handler: NewRouter(cfg, common.New(stubPinger{err: pingErr}, log), schema, authmw.NewSessionAuth(codec, log), log),
		codec:   codec,
	}
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	token, err := s.codec.Encode(session.Identity{UUID: "5b7c1f0e-8f0e-4c59-9a59-4b1f6f3f3a01", Email: "ada@example.com"})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func graphQLRequest(query, token string) *http.Request {
	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type graphQLResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func TestHealth(t *testing.T) {
	rec := newTestServer(t, nil).do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = newTestServer(t, errors.New("down")).do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGraphQLWithToken(t *testing.T) {
	server := newTestServer(t, nil)

	rec := server.do(graphQLRequest(`{ hello }`, server.token(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	var response graphQLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Empty(t, response.Errors)
	assert.Equal(t, "world", response.Data["hello"])
}

func TestGraphQLAnonymous(t *testing.T) {
	server := newTestServer(t, nil)

	for _, token := range []string{"", "garbage"} {
		rec := server.do(graphQLRequest(`{ hello }`, token))
		require.Equal(t, http.StatusOK, rec.Code)

		var response graphQLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Errors, 1)
		assert.Equal(t, graph.CodeUnauthenticated, response.Errors[0].Extensions["code"])
	}
}

func TestGraphQLOnlyAcceptsPost(t *testing.T) {
	rec := newTestServer(t, nil).do(httptest.NewRequest(http.MethodGet, "/graphql?query={hello}", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	rec := newTestServer(t, nil).do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestAuthMe(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+server.token(t))
	rec := server.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uuid":"5b7c1f0e-8f0e-4c59-9a59-4b1f6f3f3a01","email":"ada@example.com","groups":[]}`, rec.Body.String())

	rec = server.do(httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := newTestServer(t, nil).do(req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
