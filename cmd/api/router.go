package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/technexus/blog-server/internal/auth"
	"github.com/technexus/blog-server/internal/config"
	"github.com/technexus/blog-server/internal/gql"
	"github.com/technexus/blog-server/internal/middleware"
	"github.com/technexus/blog-server/internal/repo"
)

// newRouter builds the full handler chain. Split from main so tests can
// drive the complete API against a mocked database.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	authSvc := auth.NewService(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.JWTExpireHours)*time.Hour,
		userRepo,
	)

	resolver := gql.NewResolver(database, authSvc, slog.Default())
	schema := gql.MustSchema(resolver)

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Identity(authSvc))
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		if err := database.PingContext(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	limiter := middleware.GraphQLRateLimiter()
	r.With(limiter.Middleware, middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).
		Handle("/graphql", &relay.Handler{Schema: schema})

	return r
}
