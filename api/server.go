package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bethouse/cache"
	"bethouse/service"
)

// Server exposes the analytics calculators over HTTP. It holds calculator
// interfaces, not concrete services, so handlers are tested against mocks.
type Server struct {
	revenue       service.RevenueCalculator
	trends        service.TrendCalculator
	playerMetrics service.PlayerMetricsCalculator
	ltv           service.LTVCalculator
	churn         service.ChurnDetector
	retention     service.RetentionCalculator
	tenantRevenue service.TenantRevenueCalculator
	snapshots     service.SnapshotGenerator
	snapshotRepo  service.SnapshotRepository
	reportCache   *cache.ReportCache
}

// NewServer creates a new API server
func NewServer(
	revenue service.RevenueCalculator,
	trends service.TrendCalculator,
	playerMetrics service.PlayerMetricsCalculator,
	ltv service.LTVCalculator,
	churn service.ChurnDetector,
	retention service.RetentionCalculator,
	tenantRevenue service.TenantRevenueCalculator,
	snapshots service.SnapshotGenerator,
	snapshotRepo service.SnapshotRepository,
	reportCache *cache.ReportCache,
) *Server {
	return &Server{
		revenue:       revenue,
		trends:        trends,
		playerMetrics: playerMetrics,
		ltv:           ltv,
		churn:         churn,
		retention:     retention,
		tenantRevenue: tenantRevenue,
		snapshots:     snapshots,
		snapshotRepo:  snapshotRepo,
		reportCache:   reportCache,
	}
}

// Routes builds the router with all analytics endpoints
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/revenue", func(r chi.Router) {
			r.Get("/ggr", s.handleGGR)
			r.Get("/ngr", s.handleNGR)
		})

		r.Route("/trends", func(r chi.Router) {
			r.Get("/turnover", s.handleTurnover)
			r.Get("/financial", s.handleFinancialTrends)
			r.Get("/tenants", s.handleTenantTrends)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/metrics", s.handlePlayerMetrics)
			r.Get("/{userId}/ltv", s.handlePlayerLTV)
			r.Get("/churn", s.handleChurn)
			r.Get("/retention", s.handleRetention)
		})

		r.Get("/tenants/revenue", s.handleTenantRevenue)

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleListSnapshots)
			r.Post("/", s.handleGenerateSnapshot)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
