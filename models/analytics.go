package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange is a half-open [From, To) reporting window in UTC
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// GroupBy is the calendar bucket size for trend aggregations
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

// GGRResult is the gross gaming revenue breakdown for a window.
// GGR = TotalStakes - TotalPayouts; HouseEdge = GGR / TotalStakes * 100.
type GGRResult struct {
	GGR          decimal.Decimal `json:"ggr"`
	TotalStakes  decimal.Decimal `json:"totalStakes"`
	TotalPayouts decimal.Decimal `json:"totalPayouts"`
	TotalBets    int64           `json:"totalBets"`
	WonBets      int64           `json:"wonBets"`
	HouseEdge    float64         `json:"houseEdge"`
}

// NGRRates are the deduction rates applied in the GGR -> NGR waterfall
type NGRRates struct {
	ProviderFeeRate float64 `json:"providerFeeRate"`
	GatewayFeeRate  float64 `json:"gatewayFeeRate"`
	TaxRate         float64 `json:"taxRate"`
}

// NGRBreakdown is the full revenue-deduction waterfall for a window.
// Fees and bonuses are deducted from GGR to get NGR; taxes and operational
// costs are deducted from NGR to get TrueNetProfit. That ordering is part
// of the contract.
type NGRBreakdown struct {
	GGRResult
	GatewayVolume    decimal.Decimal `json:"gatewayVolume"`
	ProviderFees     decimal.Decimal `json:"providerFees"`
	GatewayFees      decimal.Decimal `json:"gatewayFees"`
	BonusesPaid      decimal.Decimal `json:"bonusesPaid"`
	NGR              decimal.Decimal `json:"ngr"`
	Taxes            decimal.Decimal `json:"taxes"`
	OperationalCosts decimal.Decimal `json:"operationalCosts"`
	TrueNetProfit    decimal.Decimal `json:"trueNetProfit"`
	ProfitMargin     float64         `json:"profitMargin"`
	Rates            NGRRates        `json:"rates"`
}

// PlayerMetrics are the player population counts for a window. The
// daily/weekly/monthly active counts are trailing windows anchored at the
// time of the query, not at the report window.
type PlayerMetrics struct {
	TotalRegistered     int64 `json:"totalRegistered"`
	ActivePlayers       int64 `json:"activePlayers"`
	NewRegistrations    int64 `json:"newRegistrations"`
	DailyActiveUsers    int64 `json:"dailyActiveUsers"`
	WeeklyActiveUsers   int64 `json:"weeklyActiveUsers"`
	MonthlyActiveUsers  int64 `json:"monthlyActiveUsers"`
	DepositingPlayers   int64 `json:"depositingPlayers"`
	FirstTimeDepositors int64 `json:"firstTimeDepositors"`
}

// PlayerSegment is the LTV tier of a player
type PlayerSegment string

const (
	SegmentWhale     PlayerSegment = "whale"
	SegmentVIP       PlayerSegment = "vip"
	SegmentHighValue PlayerSegment = "high_value"
	SegmentRegular   PlayerSegment = "regular"
	SegmentCasual    PlayerSegment = "casual"
	SegmentLowValue  PlayerSegment = "low_value"
)

// PlayerLTV is a player's lifetime value from the house perspective:
// LTV = TotalStake - TotalWinnings, so positive means the player is
// profitable for the house.
type PlayerLTV struct {
	UserID         string          `json:"userId"`
	TotalStake     decimal.Decimal `json:"totalStake"`
	TotalBets      int64           `json:"totalBets"`
	AvgStake       decimal.Decimal `json:"avgStake"`
	AvgOdds        float64         `json:"avgOdds"`
	TotalWinnings  decimal.Decimal `json:"totalWinnings"`
	WonBets        int64           `json:"wonBets"`
	WinRate        float64         `json:"winRate"`
	Deposits       decimal.Decimal `json:"deposits"`
	Withdrawals    decimal.Decimal `json:"withdrawals"`
	LTV            decimal.Decimal `json:"ltv"`
	Segment        PlayerSegment   `json:"segment"`
	Score          float64         `json:"score"`
	ProjectedValue decimal.Decimal `json:"projectedValue"`
}

// ChurnedPlayer is a player classified as churned
type ChurnedPlayer struct {
	UserID           string  `json:"userId"`
	DaysSinceLastBet int     `json:"daysSinceLastBet"`
	ChurnProbability float64 `json:"churnProbability"`
	Reason           string  `json:"reason"`
}

// AtRiskPlayer is a player showing early inactivity signs
type AtRiskPlayer struct {
	UserID           string  `json:"userId"`
	DaysSinceLastBet int     `json:"daysSinceLastBet"`
	UniqueActiveDays int     `json:"uniqueActiveDays"`
	ChurnProbability float64 `json:"churnProbability"`
	Reason           string  `json:"reason"`
	SuggestedAction  string  `json:"suggestedAction"`
}

// ChurnSummary buckets at-risk players by probability
type ChurnSummary struct {
	Urgent  int `json:"urgent"`  // probability > 80
	Warning int `json:"warning"` // 60 < probability <= 80
	Watch   int `json:"watch"`   // probability <= 60
}

// ChurnReport is the output of a single classifier run. Classification is
// exclusive: a player appears in at most one of churned/at-risk/healthy.
type ChurnReport struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	InactiveDays int             `json:"inactiveDays"`
	Churned      []ChurnedPlayer `json:"churned"`
	AtRisk       []AtRiskPlayer  `json:"atRisk"`
	HealthyCount int             `json:"healthyCount"`
	Summary      ChurnSummary    `json:"summary"`
}

// RetentionReport is the 30-day retention rate for a registration cohort
type RetentionReport struct {
	CohortMonth   string  `json:"cohortMonth"` // "2006-01"
	CohortSize    int64   `json:"cohortSize"`
	Retained      int64   `json:"retained"`
	RetentionRate float64 `json:"retentionRate"`
}

// TenantRevenue is one tenant's revenue breakdown with the platform split.
// The NGR here uses the flat tenant-settlement rates, which deliberately
// differ from the global waterfall rates.
type TenantRevenue struct {
	TenantID           string          `json:"tenantId"`
	TenantName         string          `json:"tenantName"`
	TotalStakes        decimal.Decimal `json:"totalStakes"`
	TotalPayouts       decimal.Decimal `json:"totalPayouts"`
	Deposits           decimal.Decimal `json:"deposits"`
	Withdrawals        decimal.Decimal `json:"withdrawals"`
	BonusesPaid        decimal.Decimal `json:"bonusesPaid"`
	GGR                decimal.Decimal `json:"ggr"`
	NGR                decimal.Decimal `json:"ngr"`
	ActivePlayers      int64           `json:"activePlayers"`
	ProviderPercentage float64         `json:"providerPercentage"`
	ProviderShare      decimal.Decimal `json:"providerShare"`
	TenantShare        decimal.Decimal `json:"tenantShare"`
}
