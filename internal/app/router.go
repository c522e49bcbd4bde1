package app

import (
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/VitaminP8/blogql/internal/auth"
	"github.com/VitaminP8/blogql/internal/metrics"
	"github.com/VitaminP8/blogql/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type RouterDeps struct {
	GraphQL  http.Handler
	Tokens   *auth.TokenService
	Logger   *zap.Logger
	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer
}

// NewRouter:
//
//	/query   - GraphQL (POST, websocket для подписок), с разбором Bearer-токена
//	/        - GraphQL Playground
//	/metrics - Prometheus
//	/healthz - liveness
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	r.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	r.With(auth.Middleware(deps.Tokens)).Handle("/query", deps.GraphQL)

	return r
}
