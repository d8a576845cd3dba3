package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotType is the rollup period of an analytics snapshot
type SnapshotType string

const (
	SnapshotTypeDaily   SnapshotType = "daily"
	SnapshotTypeWeekly  SnapshotType = "weekly"
	SnapshotTypeMonthly SnapshotType = "monthly"
)

// SnapshotStatus is the lifecycle state of a snapshot record
type SnapshotStatus string

const (
	SnapshotStatusCompleted SnapshotStatus = "completed"
)

// RevenueSnapshot is the revenue section of a snapshot
type RevenueSnapshot struct {
	GGR              decimal.Decimal `json:"ggr"`
	NGR              decimal.Decimal `json:"ngr"`
	Turnover         decimal.Decimal `json:"turnover"`
	TotalStakes      decimal.Decimal `json:"totalStakes"`
	TotalPayouts     decimal.Decimal `json:"totalPayouts"`
	TotalBonusesPaid decimal.Decimal `json:"totalBonusesPaid"`
	HouseEdge        float64         `json:"houseEdge"`
}

// BettingSnapshot is the betting-volume section of a snapshot
type BettingSnapshot struct {
	TotalBets int64   `json:"totalBets"`
	WonBets   int64   `json:"wonBets"`
	WinRate   float64 `json:"winRate"`
}

// PlayersSnapshot extends the player metrics with churn and retention
// figures from the same run
type PlayersSnapshot struct {
	PlayerMetrics
	ChurnedCount  int     `json:"churnedCount"`
	AtRiskCount   int     `json:"atRiskCount"`
	RetentionRate float64 `json:"retentionRate"`
}

// FinancialSnapshot is the money-movement section of a snapshot
type FinancialSnapshot struct {
	TotalDeposits    decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	NetDeposits      decimal.Decimal `json:"netDeposits"`
}

// AgentsSnapshot aggregates the tenant revenue splits for the period
type AgentsSnapshot struct {
	TenantCount   int             `json:"tenantCount"`
	PlatformShare decimal.Decimal `json:"platformShare"`
	TenantShare   decimal.Decimal `json:"tenantShare"`
}

// AnalyticsSnapshot is the persisted rollup for one (type, period, tenant).
// Snapshots are write-once: re-running a period appends a new record rather
// than mutating history.
type AnalyticsSnapshot struct {
	ID          string            `json:"id"`
	Type        SnapshotType      `json:"type"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	TenantID    *string           `json:"tenantId,omitempty"`
	Revenue     RevenueSnapshot   `json:"revenue"`
	Betting     BettingSnapshot   `json:"betting"`
	Players     PlayersSnapshot   `json:"players"`
	Financial   FinancialSnapshot `json:"financial"`
	Agents      AgentsSnapshot    `json:"agents"`
	Status      SnapshotStatus    `json:"status"`
	GeneratedBy string            `json:"generatedBy"`
	CreatedAt   time.Time         `json:"createdAt"`
}
