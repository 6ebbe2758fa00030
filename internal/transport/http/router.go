// Package httptransport wires all public endpoints behind the shared
// middleware chain.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	complianceHandler "nachweis/internal/compliance/handler"
	"nachweis/internal/platform/metrics"
	"nachweis/internal/platform/middleware"
	"nachweis/internal/platform/ratelimit"
	requirementHandler "nachweis/internal/requirement/handler"
)

// NewRouter builds the HTTP surface: health and metrics unauthenticated, the
// compliance API behind JWT auth and per-caller rate limiting.
func NewRouter(
	logger *slog.Logger,
	appMetrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	limiter ratelimit.Limiter,
	compliance *complianceHandler.Handler,
	requirements *requirementHandler.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(appMetrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(30 * time.Second))
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.RequireAuth(jwtValidator, logger))
		api.Use(middleware.RateLimit(limiter, logger))
		compliance.Register(api)
		requirements.Register(api)
	})

	return r
}
