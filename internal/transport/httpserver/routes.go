package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"mealplanner/internal/config"
	"mealplanner/internal/transport/httpserver/handler/common"
	authmw "mealplanner/internal/transport/httpserver/middleware"
	"mealplanner/pkg/logger"
)

const maxRequestBytes = 1 << 20

func NewRouter(cfg config.Config, handlers *common.Handlers, schema *graphql.Schema, auth *authmw.SessionAuth, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logger.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.RequestSize(maxRequestBytes))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.NotFound(handlers.NotFound)
	r.Get("/health", handlers.Health)

	graph := &relay.Handler{Schema: schema}
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/auth/me", handlers.AuthMe)
		r.Post("/graphql", graph.ServeHTTP)
	})

	return r
}
