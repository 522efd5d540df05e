// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server assembles the HTTP router and runs the API server.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/wordalign/internal/config"
	"github.com/olegiv/wordalign/internal/handler"
	"github.com/olegiv/wordalign/internal/handler/api"
	"github.com/olegiv/wordalign/internal/middleware"
	"github.com/olegiv/wordalign/internal/service"
	"github.com/olegiv/wordalign/internal/version"
)

// NewRouter builds the application router with the full middleware stack.
func NewRouter(cfg *config.Config, db *sql.DB, logger *slog.Logger, info version.Info) http.Handler {
	svc := service.NewAnnotationService(db, logger)
	apiHandler := api.NewHandler(svc, logger)
	healthHandler := handler.NewHealthHandler(db, info)

	r := chi.NewRouter()

	r.Use(middleware.TrimTrailingSlash) // /api/alignments/ is served as /api/alignments
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	r.Route(handler.RouteAPI, func(r chi.Router) {
		r.Use(middleware.APIHeaders(cfg.IsDevelopment()))
		if cfg.RateLimitEnabled() {
			apiRateLimiter := middleware.NewGlobalRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst)
			r.Use(apiRateLimiter.Middleware())
		}
		apiHandler.Routes(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteNotFound(w, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}
