package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bethouse/cache"
	"bethouse/models"
	"bethouse/service"
)

type serverMocks struct {
	revenue       *service.MockRevenueCalculator
	trends        *service.MockTrendCalculator
	playerMetrics *service.MockPlayerMetricsCalculator
	ltv           *service.MockLTVCalculator
	churn         *service.MockChurnDetector
	retention     *service.MockRetentionCalculator
	tenantRevenue *service.MockTenantRevenueCalculator
	snapshots     *service.MockSnapshotGenerator
	snapshotRepo  *service.MockSnapshotRepository
}

func newTestServer(t *testing.T, withRedis bool) (*Server, *serverMocks) {
	t.Helper()

	var client *redis.Client
	if withRedis {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() {
			client.Close()
			mr.Close()
		})
	}

	m := &serverMocks{
		revenue:       new(service.MockRevenueCalculator),
		trends:        new(service.MockTrendCalculator),
		playerMetrics: new(service.MockPlayerMetricsCalculator),
		ltv:           new(service.MockLTVCalculator),
		churn:         new(service.MockChurnDetector),
		retention:     new(service.MockRetentionCalculator),
		tenantRevenue: new(service.MockTenantRevenueCalculator),
		snapshots:     new(service.MockSnapshotGenerator),
		snapshotRepo:  new(service.MockSnapshotRepository),
	}
	srv := NewServer(m.revenue, m.trends, m.playerMetrics, m.ltv, m.churn,
		m.retention, m.tenantRevenue, m.snapshots, m.snapshotRepo,
		cache.NewReportCache(client))
	return srv, m
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleGGR(t *testing.T) {
	srv, m := newTestServer(t, false)

	m.revenue.On("CalculateGGR", mock.Anything, mock.AnythingOfType("models.TimeRange"), (*string)(nil)).
		Return(&models.GGRResult{
			GGR:         decimal.NewFromInt(800),
			TotalStakes: decimal.NewFromInt(10000),
			HouseEdge:   8,
		}, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/revenue/ggr", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.GGRResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.GGR.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, float64(8), got.HouseEdge)
}

func TestHandleGGR_ExplicitWindow(t *testing.T) {
	srv, m := newTestServer(t, false)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	tenantID := "tenant-a"
	m.revenue.On("CalculateGGR", mock.Anything, models.TimeRange{From: from, To: to}, &tenantID).
		Return(&models.GGRResult{}, nil)

	url := "/api/revenue/ggr?from=2026-08-01T00:00:00Z&to=2026-08-15T00:00:00Z&tenant_id=tenant-a"
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	m.revenue.AssertExpectations(t)
}

func TestHandleGGR_InvalidWindow(t *testing.T) {
	srv, _ := newTestServer(t, false)

	tests := []struct {
		name string
		url  string
	}{
		{"malformed from", "/api/revenue/ggr?from=yesterday"},
		{"inverted window", "/api/revenue/ggr?from=2026-08-15T00:00:00Z&to=2026-08-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleNGR_RateOverride(t *testing.T) {
	srv, m := newTestServer(t, false)

	wantRates := service.DefaultNGRRates
	wantRates.TaxRate = 0.21
	m.revenue.On("CalculateNGR", mock.Anything, mock.AnythingOfType("models.TimeRange"), (*string)(nil), wantRates).
		Return(&models.NGRBreakdown{}, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/revenue/ngr?tax_rate=0.21", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	m.revenue.AssertExpectations(t)
}

func TestHandleNGR_InvalidRate(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/revenue/ngr?tax_rate=1.5", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTurnover_InvalidGroupBy(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trends/turnover?group_by=hour", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePlayerLTV(t *testing.T) {
	srv, m := newTestServer(t, false)

	m.ltv.On("CalculatePlayerLTV", mock.Anything, "user-42").Return(&models.PlayerLTV{
		UserID:  "user-42",
		LTV:     decimal.NewFromInt(400),
		Segment: models.SegmentRegular,
	}, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/user-42/ltv", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.PlayerLTV
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.SegmentRegular, got.Segment)
}

func TestHandleChurn_PatternMode(t *testing.T) {
	srv, m := newTestServer(t, false)

	m.churn.On("DetectChurnByPattern", mock.Anything, (*string)(nil), 3).
		Return(&models.ChurnReport{HealthyCount: 10}, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/churn?mode=pattern&inactive_days=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	m.churn.AssertNotCalled(t, "DetectChurn", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleChurn_CachedAfterFirstCall(t *testing.T) {
	srv, m := newTestServer(t, true)

	m.churn.On("DetectChurn", mock.Anything, (*string)(nil), 0).
		Return(&models.ChurnReport{HealthyCount: 5}, nil).Once()

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/churn", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.ChurnReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 5, got.HealthyCount)
	}

	// The second request is served from the cache
	m.churn.AssertNumberOfCalls(t, "DetectChurn", 1)
}

func TestHandleRetention_InvalidMonth(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/retention?month=July", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateSnapshot(t *testing.T) {
	srv, m := newTestServer(t, false)

	m.snapshots.On("GenerateSnapshot", mock.Anything, models.SnapshotTypeDaily, (*string)(nil), (*models.TimeRange)(nil), "api").
		Return(&models.AnalyticsSnapshot{ID: "snap-1", Type: models.SnapshotTypeDaily}, nil)

	body := bytes.NewBufferString(`{"type":"daily"}`)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snapshots", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.AnalyticsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "snap-1", got.ID)
}

func TestHandleGenerateSnapshot_InvalidType(t *testing.T) {
	srv, _ := newTestServer(t, false)

	body := bytes.NewBufferString(`{"type":"hourly"}`)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snapshots", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListSnapshots(t *testing.T) {
	srv, m := newTestServer(t, false)

	weekly := models.SnapshotTypeWeekly
	m.snapshotRepo.On("List", mock.Anything, &weekly, 5).
		Return([]*models.AnalyticsSnapshot{{ID: "snap-1"}}, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshots?type=weekly&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	m.snapshotRepo.AssertExpectations(t)
}
