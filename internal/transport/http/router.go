// Package httptransport is the thin HTTP layer over the claims engine. It
// delegates to domain services without embedding business logic so transport
// concerns remain isolated.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vitaran/internal/platform/middleware"
)

// HealthChecker reports whether one backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Router wires all public endpoints behind the shared middleware stack.
type Router struct {
	logger   *slog.Logger
	citizens *CitizenHandler
	claims   *ClaimHandler
	admin    *AdminHandler
	checks   map[string]HealthChecker
}

func NewRouter(logger *slog.Logger, citizens *CitizenHandler, claims *ClaimHandler, admin *AdminHandler) *Router {
	return &Router{
		logger:   logger,
		citizens: citizens,
		claims:   claims,
		admin:    admin,
		checks:   make(map[string]HealthChecker),
	}
}

// WithHealthCheck registers a named dependency for /healthz.
func (rt *Router) WithHealthCheck(name string, checker HealthChecker) *Router {
	rt.checks[name] = checker
	return rt
}

// Handler assembles the chi router.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	rt.citizens.Register(r)
	rt.claims.Register(r)
	rt.admin.Register(r)

	r.Get("/healthz", rt.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (rt *Router) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(rt.checks))
	healthy := true
	for name, checker := range rt.checks {
		if err := checker.Health(ctx); err != nil {
			deps[name] = err.Error()
			healthy = false
			continue
		}
		deps[name] = "ok"
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	writeJSON(w, status, map[string]any{
		"status":       overall,
		"dependencies": deps,
	})
}

// summaryAdapter aggregates the read-side counters from the two services.
type summaryAdapter struct {
	citizens CitizenService
	claims   ClaimService
}

// NewSummarySource builds the aggregate source for /summary.
func NewSummarySource(citizens CitizenService, claims ClaimService) SummarySource {
	return summaryAdapter{citizens: citizens, claims: claims}
}

func (a summaryAdapter) CountCitizens(ctx context.Context) (int, error) {
	return a.citizens.Count(ctx)
}

func (a summaryAdapter) CountTransactions(ctx context.Context) (int, error) {
	return a.claims.CountTransactions(ctx)
}
