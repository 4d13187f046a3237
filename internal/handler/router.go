/*
Package handler provides the HTTP routing setup for the user registration server.

This file defines the main Router, applying CORS, request id, request logging and panic
recovery before delegating to the GraphQL endpoint and the health check.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"usergraph/internal/configs"
	"usergraph/internal/graph"
	"usergraph/internal/pkg/auth/jwt"
	"usergraph/internal/pkg/logx"
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It configures CORS and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(corsMiddleware(deps.Config))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", HandleHealth(deps))

	schema := graph.NewSchema(graph.NewResolver(deps.Accounts, deps.Config.ExposePasswordHash), deps.Logger)
	gql := graph.NewHandler(schema, deps.Config.GraphiQLEnabled)

	r.With(jwt.IdentityExtractorMiddleware(deps.Issuer)).Handle("/graphql", gql)

	return r
}

// corsMiddleware allows every origin in development and only AllowedOrigins otherwise.
// rs/cors treats an empty origin list as "*", so an empty list outside development denies all.
func corsMiddleware(cfg *configs.AppConfig) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	}

	switch {
	case cfg.IsDevelopment():
		opts.AllowedOrigins = []string{"*"}
	case len(cfg.AllowedOrigins) > 0:
		opts.AllowedOrigins = cfg.AllowedOrigins
	default:
		opts.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(opts).Handler
}
