package models

import (
	"github.com/shopspring/decimal"
)

// BetRevenueStats holds the raw aggregates for GGR over a window.
// TotalStakes counts bets of any status; TotalPayouts only won bets.
type BetRevenueStats struct {
	TotalStakes  decimal.Decimal
	TotalPayouts decimal.Decimal
	TotalBets    int64
	WonBets      int64
}

// TurnoverBucket is one calendar bucket of stake aggregation
type TurnoverBucket struct {
	Date        string          `json:"date"`
	TotalStakes decimal.Decimal `json:"totalStakes"`
	BetCount    int64           `json:"betCount"`
	AvgStake    decimal.Decimal `json:"avgStake"`
	AvgOdds     float64         `json:"avgOdds"`
}

// TenantTurnoverBucket is one (tenant, bucket) row for per-tenant charting
type TenantTurnoverBucket struct {
	TenantID     string          `json:"tenantId"`
	Date         string          `json:"date"`
	TotalStakes  decimal.Decimal `json:"totalStakes"`
	TotalPayouts decimal.Decimal `json:"totalPayouts"`
	BetCount     int64           `json:"betCount"`
}

// FinancialStats holds completed-transaction aggregates over a window
type FinancialStats struct {
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	BonusesPaid      decimal.Decimal
	DepositCount     int64
	WithdrawalCount  int64
}

// FinancialTrendRow is one calendar bucket of deposit/withdrawal activity,
// zero-filled for types with no activity in the bucket
type FinancialTrendRow struct {
	Date            string          `json:"date"`
	Deposits        decimal.Decimal `json:"deposits"`
	DepositCount    int64           `json:"depositCount"`
	Withdrawals     decimal.Decimal `json:"withdrawals"`
	WithdrawalCount int64           `json:"withdrawalCount"`
}

// PlayerBetStats holds lifetime betting aggregates for a single player
type PlayerBetStats struct {
	TotalStake    decimal.Decimal
	TotalBets     int64
	AvgStake      decimal.Decimal
	AvgOdds       float64
	TotalWinnings decimal.Decimal
	WonBets       int64
}

// PlayerTransactionTotals holds lifetime completed deposit/withdrawal sums
// for a single player
type PlayerTransactionTotals struct {
	Deposits    decimal.Decimal
	Withdrawals decimal.Decimal
}
