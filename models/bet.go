package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetStatus represents the settlement state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
	BetStatusVoid    BetStatus = "void"
)

// Bet represents a wager record in the store. Bets are immutable as far as
// the analytics engine is concerned; settlement happens upstream.
type Bet struct {
	ID           string          `db:"id" json:"id"`
	UserID       string          `db:"user_id" json:"userId"`
	TenantID     string          `db:"tenant_id" json:"tenantId"`
	Stake        decimal.Decimal `db:"stake" json:"stake"`
	TotalOdds    decimal.Decimal `db:"total_odds" json:"totalOdds"`
	Status       BetStatus       `db:"status" json:"status"`
	PotentialWin decimal.Decimal `db:"potential_win" json:"potentialWin"`
	ActualWin    decimal.Decimal `db:"actual_win" json:"actualWin"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}
