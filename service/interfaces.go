package service

import (
	"context"
	"time"

	"bethouse/models"
)

// BetRepository defines the bet aggregate reads used by the calculators
type BetRepository interface {
	// GetRevenueStats returns raw GGR aggregates for a window
	GetRevenueStats(ctx context.Context, window models.TimeRange, tenantID *string) (*models.BetRevenueStats, error)

	// GetTurnoverBuckets returns stake aggregates grouped by calendar bucket
	GetTurnoverBuckets(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.TurnoverBucket, error)

	// GetTenantTurnoverBuckets returns stake/payout aggregates per (tenant, bucket)
	GetTenantTurnoverBuckets(ctx context.Context, window models.TimeRange, groupBy models.GroupBy) ([]*models.TenantTurnoverBucket, error)

	// CountDistinctBettorsSince counts distinct bettors since a given time
	CountDistinctBettorsSince(ctx context.Context, since time.Time, tenantID *string) (int64, error)

	// CountActiveBettors counts distinct bettors within a window
	CountActiveBettors(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error)

	// CountActiveInCohort counts cohort members with a bet since a given time
	CountActiveInCohort(ctx context.Context, userIDs []string, since time.Time) (int64, error)

	// GetPlayerStats returns lifetime betting aggregates for one player
	GetPlayerStats(ctx context.Context, userID string) (*models.PlayerBetStats, error)

	// GetLastBetTimes returns the most recent bet time per user
	GetLastBetTimes(ctx context.Context, tenantID *string) (map[string]time.Time, error)

	// GetBetTimesSince returns per-user bet timestamps since a given time,
	// ascending within each user
	GetBetTimesSince(ctx context.Context, since time.Time, tenantID *string) (map[string][]time.Time, error)
}

// TransactionRepository defines the completed-transaction aggregate reads
type TransactionRepository interface {
	// GetFinancialStats returns deposit/withdrawal/bonus aggregates for a window
	GetFinancialStats(ctx context.Context, window models.TimeRange, tenantID *string) (*models.FinancialStats, error)

	// GetTrendRows returns bucketed deposit/withdrawal activity
	GetTrendRows(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.FinancialTrendRow, error)

	// CountDepositingPlayers counts distinct users with a completed deposit in a window
	CountDepositingPlayers(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error)

	// CountFirstTimeDepositors counts users whose earliest-ever completed
	// deposit falls inside the window
	CountFirstTimeDepositors(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error)

	// GetPlayerTotals returns lifetime deposit/withdrawal sums for one player
	GetPlayerTotals(ctx context.Context, userID string) (*models.PlayerTransactionTotals, error)
}

// UserRepository defines the account reads used by the calculators
type UserRepository interface {
	// CountPlayers counts accounts with the player role
	CountPlayers(ctx context.Context, tenantID *string) (int64, error)

	// CountActivePlayers counts players with active status
	CountActivePlayers(ctx context.Context, tenantID *string) (int64, error)

	// CountNewRegistrations counts players created within the window
	CountNewRegistrations(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error)

	// GetPlayers returns all player accounts, optionally tenant-scoped
	GetPlayers(ctx context.Context, tenantID *string) ([]*models.User, error)

	// GetCohortPlayerIDs returns players registered within [monthStart, monthEnd)
	GetCohortPlayerIDs(ctx context.Context, monthStart, monthEnd time.Time, tenantID *string) ([]string, error)
}

// TenantRepository defines the tenant reads used by the revenue splitter
type TenantRepository interface {
	// GetActiveTenants returns tenants in active or trial status
	GetActiveTenants(ctx context.Context) ([]*models.Tenant, error)
}

// SnapshotRepository defines the snapshot write path
type SnapshotRepository interface {
	// Create appends one snapshot record
	Create(ctx context.Context, snapshot *models.AnalyticsSnapshot) error

	// List returns recent snapshots, newest first
	List(ctx context.Context, snapshotType *models.SnapshotType, limit int) ([]*models.AnalyticsSnapshot, error)
}

// RevenueCalculator computes GGR and the NGR deduction waterfall
type RevenueCalculator interface {
	CalculateGGR(ctx context.Context, window models.TimeRange, tenantID *string) (*models.GGRResult, error)
	CalculateNGR(ctx context.Context, window models.TimeRange, tenantID *string, rates models.NGRRates) (*models.NGRBreakdown, error)
}

// TrendCalculator computes time-bucketed turnover and financial series
type TrendCalculator interface {
	GetTurnover(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.TurnoverBucket, error)
	GetFinancialTrends(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.FinancialTrendRow, error)
}

// PlayerMetricsCalculator computes player population counts
type PlayerMetricsCalculator interface {
	GetPlayerMetrics(ctx context.Context, window models.TimeRange, tenantID *string) (*models.PlayerMetrics, error)
}

// LTVCalculator computes per-player lifetime value and segmentation
type LTVCalculator interface {
	CalculatePlayerLTV(ctx context.Context, userID string) (*models.PlayerLTV, error)
}

// ChurnDetector classifies players as churned, at-risk or healthy
type ChurnDetector interface {
	DetectChurn(ctx context.Context, tenantID *string, inactiveDays int) (*models.ChurnReport, error)
	DetectChurnByPattern(ctx context.Context, tenantID *string, inactiveDays int) (*models.ChurnReport, error)
}

// RetentionCalculator computes cohort retention
type RetentionCalculator interface {
	CalculateRetention(ctx context.Context, tenantID *string, cohortMonth *time.Time) (*models.RetentionReport, error)
}

// TenantRevenueCalculator computes per-tenant revenue with the platform split
type TenantRevenueCalculator interface {
	GetGGRByTenant(ctx context.Context, window models.TimeRange) ([]*models.TenantRevenue, error)
	GetGGRTrendByTenant(ctx context.Context, window models.TimeRange, groupBy models.GroupBy) ([]*models.TenantTurnoverBucket, error)
}

// SnapshotGenerator produces and persists periodic analytics snapshots
type SnapshotGenerator interface {
	GenerateSnapshot(ctx context.Context, snapshotType models.SnapshotType, tenantID *string, window *models.TimeRange, generatedBy string) (*models.AnalyticsSnapshot, error)
}
