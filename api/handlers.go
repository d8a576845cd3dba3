package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"bethouse/cache"
	"bethouse/models"
	"bethouse/service"
)

// handleGGR returns the gross gaming revenue breakdown for a window
// GET /api/revenue/ggr
func (s *Server) handleGGR(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.revenue.CalculateGGR(r.Context(), window, parseTenantID(r))
	if err != nil {
		log.WithError(err).Error("Failed to calculate GGR")
		writeJSONError(w, "failed to calculate GGR", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleNGR returns the full deduction waterfall. Rates default to the
// platform rates and can be overridden per request.
// GET /api/revenue/ngr
func (s *Server) handleNGR(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rates, err := parseRates(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.revenue.CalculateNGR(r.Context(), window, parseTenantID(r), rates)
	if err != nil {
		log.WithError(err).Error("Failed to calculate NGR")
		writeJSONError(w, "failed to calculate NGR", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseRates reads optional waterfall rate overrides
func parseRates(r *http.Request) (models.NGRRates, error) {
	rates := service.DefaultNGRRates
	for param, target := range map[string]*float64{
		"provider_fee_rate": &rates.ProviderFeeRate,
		"gateway_fee_rate":  &rates.GatewayFeeRate,
		"tax_rate":          &rates.TaxRate,
	} {
		v := r.URL.Query().Get(param)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return models.NGRRates{}, fmt.Errorf("invalid %s parameter: must be a fraction between 0 and 1", param)
		}
		*target = f
	}
	return rates, nil
}

// handleTurnover returns stake aggregates per calendar bucket
// GET /api/trends/turnover
func (s *Server) handleTurnover(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	groupBy, err := parseGroupBy(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buckets, err := s.trends.GetTurnover(r.Context(), window, parseTenantID(r), groupBy)
	if err != nil {
		log.WithError(err).Error("Failed to get turnover trends")
		writeJSONError(w, "failed to get turnover trends", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"groupBy": groupBy,
		"buckets": buckets,
	})
}

// handleFinancialTrends returns deposit/withdrawal activity per bucket
// GET /api/trends/financial
func (s *Server) handleFinancialTrends(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	groupBy, err := parseGroupBy(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := s.trends.GetFinancialTrends(r.Context(), window, parseTenantID(r), groupBy)
	if err != nil {
		log.WithError(err).Error("Failed to get financial trends")
		writeJSONError(w, "failed to get financial trends", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"groupBy": groupBy,
		"rows":    rows,
	})
}

// handleTenantTrends returns per-tenant stake/payout buckets
// GET /api/trends/tenants
func (s *Server) handleTenantTrends(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	groupBy, err := parseGroupBy(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buckets, err := s.tenantRevenue.GetGGRTrendByTenant(r.Context(), window, groupBy)
	if err != nil {
		log.WithError(err).Error("Failed to get tenant trends")
		writeJSONError(w, "failed to get tenant trends", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"groupBy": groupBy,
		"buckets": buckets,
	})
}

// handlePlayerMetrics returns the player population counts
// GET /api/players/metrics
func (s *Server) handlePlayerMetrics(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics, err := s.playerMetrics.GetPlayerMetrics(r.Context(), window, parseTenantID(r))
	if err != nil {
		log.WithError(err).Error("Failed to get player metrics")
		writeJSONError(w, "failed to get player metrics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// handlePlayerLTV returns lifetime value and segment for one player
// GET /api/players/{userId}/ltv
func (s *Server) handlePlayerLTV(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, "missing user id", http.StatusBadRequest)
		return
	}

	result, err := s.ltv.CalculatePlayerLTV(r.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to calculate player LTV")
		writeJSONError(w, "failed to calculate player LTV", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleChurn runs one of the two churn classifiers. mode=pattern selects
// the bet-pattern classifier; the default is the baseline inactivity one.
// GET /api/players/churn
func (s *Server) handleChurn(w http.ResponseWriter, r *http.Request) {
	inactiveDays, err := parseIntParam(r, "inactive_days", 0)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := r.URL.Query().Get("mode")
	switch mode {
	case "":
		mode = "baseline"
	case "baseline", "pattern":
	default:
		writeJSONError(w, "invalid mode parameter: must be baseline or pattern", http.StatusBadRequest)
		return
	}

	tenantID := parseTenantID(r)
	key := cache.ReportKey("churn", mode, tenantScope(tenantID), strconv.Itoa(inactiveDays))

	var cached models.ChurnReport
	if err := s.reportCache.Get(r.Context(), key, &cached); err == nil {
		writeJSON(w, http.StatusOK, &cached)
		return
	} else if !errors.Is(err, cache.ErrMiss) {
		log.WithError(err).Warn("Churn report cache read failed")
	}

	var report *models.ChurnReport
	if mode == "pattern" {
		report, err = s.churn.DetectChurnByPattern(r.Context(), tenantID, inactiveDays)
	} else {
		report, err = s.churn.DetectChurn(r.Context(), tenantID, inactiveDays)
	}
	if err != nil {
		log.WithError(err).Error("Failed to detect churn")
		writeJSONError(w, "failed to detect churn", http.StatusInternalServerError)
		return
	}

	if err := s.reportCache.Set(r.Context(), key, report, cache.ChurnReportTTL); err != nil {
		log.WithError(err).Warn("Churn report cache write failed")
	}

	writeJSON(w, http.StatusOK, report)
}

// handleRetention returns cohort retention for a registration month
// GET /api/players/retention?month=2026-07
func (s *Server) handleRetention(w http.ResponseWriter, r *http.Request) {
	var cohortMonth *time.Time
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := time.Parse("2006-01", v)
		if err != nil {
			writeJSONError(w, "invalid month parameter: expected YYYY-MM", http.StatusBadRequest)
			return
		}
		cohortMonth = &m
	}

	report, err := s.retention.CalculateRetention(r.Context(), parseTenantID(r), cohortMonth)
	if err != nil {
		log.WithError(err).Error("Failed to calculate retention")
		writeJSONError(w, "failed to calculate retention", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleTenantRevenue returns the per-tenant revenue split, cached briefly
// since settling every tenant fans out several aggregate queries
// GET /api/tenants/revenue
func (s *Server) handleTenantRevenue(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := cache.ReportKey("tenant_revenue",
		window.From.Format(time.RFC3339), window.To.Format(time.RFC3339))

	var cached []*models.TenantRevenue
	if err := s.reportCache.Get(r.Context(), key, &cached); err == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"tenants": cached})
		return
	} else if !errors.Is(err, cache.ErrMiss) {
		log.WithError(err).Warn("Tenant revenue cache read failed")
	}

	results, err := s.tenantRevenue.GetGGRByTenant(r.Context(), window)
	if err != nil {
		log.WithError(err).Error("Failed to get tenant revenue")
		writeJSONError(w, "failed to get tenant revenue", http.StatusInternalServerError)
		return
	}

	if err := s.reportCache.Set(r.Context(), key, results, cache.ReportTTL); err != nil {
		log.WithError(err).Warn("Tenant revenue cache write failed")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tenants": results})
}

// generateSnapshotRequest is the request body for snapshot generation
type generateSnapshotRequest struct {
	Type     models.SnapshotType `json:"type"`
	TenantID *string             `json:"tenantId,omitempty"`
	From     *time.Time          `json:"from,omitempty"`
	To       *time.Time          `json:"to,omitempty"`
}

// handleGenerateSnapshot runs every calculator for a period and persists
// the result
// POST /api/snapshots
func (s *Server) handleGenerateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req generateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch req.Type {
	case models.SnapshotTypeDaily, models.SnapshotTypeWeekly, models.SnapshotTypeMonthly:
	default:
		writeJSONError(w, "invalid snapshot type: must be daily, weekly or monthly", http.StatusBadRequest)
		return
	}

	var window *models.TimeRange
	if req.From != nil || req.To != nil {
		if req.From == nil || req.To == nil || !req.To.After(*req.From) {
			writeJSONError(w, "from and to must both be set and form a valid window", http.StatusBadRequest)
			return
		}
		window = &models.TimeRange{From: req.From.UTC(), To: req.To.UTC()}
	}

	snapshot, err := s.snapshots.GenerateSnapshot(r.Context(), req.Type, req.TenantID, window, "api")
	if err != nil {
		log.WithError(err).Error("Failed to generate snapshot")
		writeJSONError(w, "failed to generate snapshot", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, snapshot)
}

// handleListSnapshots returns recent snapshots, newest first
// GET /api/snapshots
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", 20)
	if err != nil || limit <= 0 || limit > 100 {
		writeJSONError(w, "invalid limit parameter: must be between 1 and 100", http.StatusBadRequest)
		return
	}

	var snapshotType *models.SnapshotType
	if v := r.URL.Query().Get("type"); v != "" {
		st := models.SnapshotType(v)
		switch st {
		case models.SnapshotTypeDaily, models.SnapshotTypeWeekly, models.SnapshotTypeMonthly:
			snapshotType = &st
		default:
			writeJSONError(w, "invalid type parameter", http.StatusBadRequest)
			return
		}
	}

	snapshots, err := s.snapshotRepo.List(r.Context(), snapshotType, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list snapshots")
		writeJSONError(w, "failed to list snapshots", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"snapshots": snapshots})
}

// tenantScope renders a tenant filter for cache keys
func tenantScope(tenantID *string) string {
	if tenantID == nil {
		return "all"
	}
	return *tenantID
}
