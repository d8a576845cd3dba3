package service

import (
	"context"
	"fmt"
	"time"

	"bethouse/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SnapshotService orchestrates every calculator for a period and persists
// one immutable AnalyticsSnapshot. Any calculator failure aborts the run;
// a partial snapshot is never written. Re-running a period appends a new
// record, it never rewrites history.
type SnapshotService struct {
	revenue       RevenueCalculator
	trends        TrendCalculator
	playerMetrics PlayerMetricsCalculator
	churn         ChurnDetector
	retention     RetentionCalculator
	tenantRevenue TenantRevenueCalculator
	snapshotRepo  SnapshotRepository
	now           func() time.Time
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(
	revenue RevenueCalculator,
	trends TrendCalculator,
	playerMetrics PlayerMetricsCalculator,
	churn ChurnDetector,
	retention RetentionCalculator,
	tenantRevenue TenantRevenueCalculator,
	snapshotRepo SnapshotRepository,
) *SnapshotService {
	return &SnapshotService{
		revenue:       revenue,
		trends:        trends,
		playerMetrics: playerMetrics,
		churn:         churn,
		retention:     retention,
		tenantRevenue: tenantRevenue,
		snapshotRepo:  snapshotRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// resolvePeriod derives the default window for a snapshot type: daily is
// today so far, weekly the trailing 7 days, monthly the trailing month
func (s *SnapshotService) resolvePeriod(snapshotType models.SnapshotType) models.TimeRange {
	now := s.now()
	switch snapshotType {
	case models.SnapshotTypeWeekly:
		return models.TimeRange{From: now.AddDate(0, 0, -7), To: now}
	case models.SnapshotTypeMonthly:
		return models.TimeRange{From: now.AddDate(0, -1, 0), To: now}
	default:
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return models.TimeRange{From: startOfDay, To: now}
	}
}

// GenerateSnapshot resolves the period, fans out to every calculator, folds
// the results into one snapshot document and persists it
func (s *SnapshotService) GenerateSnapshot(ctx context.Context, snapshotType models.SnapshotType, tenantID *string, window *models.TimeRange, generatedBy string) (*models.AnalyticsSnapshot, error) {
	period := s.resolvePeriod(snapshotType)
	if window != nil {
		period = *window
	}

	var (
		ngr       *models.NGRBreakdown
		metrics   *models.PlayerMetrics
		tenantRev []*models.TenantRevenue
		trends    []*models.FinancialTrendRow
		churn     *models.ChurnReport
		retention *models.RetentionReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ngr, err = s.revenue.CalculateNGR(gctx, period, tenantID, DefaultNGRRates)
		if err != nil {
			return fmt.Errorf("failed to calculate NGR: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		metrics, err = s.playerMetrics.GetPlayerMetrics(gctx, period, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get player metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tenantRev, err = s.tenantRevenue.GetGGRByTenant(gctx, period)
		if err != nil {
			return fmt.Errorf("failed to get tenant revenue: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		trends, err = s.trends.GetFinancialTrends(gctx, period, tenantID, models.GroupByDay)
		if err != nil {
			return fmt.Errorf("failed to get financial trends: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		churn, err = s.churn.DetectChurn(gctx, tenantID, DefaultInactiveDays)
		if err != nil {
			return fmt.Errorf("failed to detect churn: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		retention, err = s.retention.CalculateRetention(gctx, tenantID, nil)
		if err != nil {
			return fmt.Errorf("failed to calculate retention: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalDeposits := decimal.Zero
	totalWithdrawals := decimal.Zero
	for _, row := range trends {
		totalDeposits = totalDeposits.Add(row.Deposits)
		totalWithdrawals = totalWithdrawals.Add(row.Withdrawals)
	}

	platformShare := decimal.Zero
	tenantShare := decimal.Zero
	for _, tr := range tenantRev {
		platformShare = platformShare.Add(tr.ProviderShare)
		tenantShare = tenantShare.Add(tr.TenantShare)
	}

	snapshot := &models.AnalyticsSnapshot{
		ID:          uuid.NewString(),
		Type:        snapshotType,
		PeriodStart: period.From,
		PeriodEnd:   period.To,
		TenantID:    tenantID,
		Revenue: models.RevenueSnapshot{
			GGR:              ngr.GGR,
			NGR:              ngr.NGR,
			Turnover:         ngr.TotalStakes,
			TotalStakes:      ngr.TotalStakes,
			TotalPayouts:     ngr.TotalPayouts,
			TotalBonusesPaid: ngr.BonusesPaid,
			HouseEdge:        ngr.HouseEdge,
		},
		Betting: models.BettingSnapshot{
			TotalBets: ngr.TotalBets,
			WonBets:   ngr.WonBets,
			WinRate:   countPercentage(ngr.WonBets, ngr.TotalBets),
		},
		Players: models.PlayersSnapshot{
			PlayerMetrics: *metrics,
			ChurnedCount:  len(churn.Churned),
			AtRiskCount:   len(churn.AtRisk),
			RetentionRate: retention.RetentionRate,
		},
		Financial: models.FinancialSnapshot{
			TotalDeposits:    round2(totalDeposits),
			TotalWithdrawals: round2(totalWithdrawals),
			NetDeposits:      round2(totalDeposits.Sub(totalWithdrawals)),
		},
		Agents: models.AgentsSnapshot{
			TenantCount:   len(tenantRev),
			PlatformShare: round2(platformShare),
			TenantShare:   round2(tenantShare),
		},
		Status:      models.SnapshotStatusCompleted,
		GeneratedBy: generatedBy,
	}

	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	return snapshot, nil
}
