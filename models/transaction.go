package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of financial transaction
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeBonus       TransactionType = "bonus"
	TransactionTypeBonusCredit TransactionType = "bonus_credit"
	TransactionTypeFreeBet     TransactionType = "free_bet"
	TransactionTypeCashback    TransactionType = "cashback"
)

// TransactionStatus represents the processing state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// BonusTransactionTypes are the transaction types counted as bonus cost in
// the NGR waterfall.
var BonusTransactionTypes = []TransactionType{
	TransactionTypeBonus,
	TransactionTypeBonusCredit,
	TransactionTypeFreeBet,
	TransactionTypeCashback,
}

// Transaction represents a financial transaction record in the store.
// Only completed transactions participate in financial aggregates.
type Transaction struct {
	ID        string            `db:"id" json:"id"`
	UserID    string            `db:"user_id" json:"userId"`
	TenantID  string            `db:"tenant_id" json:"tenantId"`
	Type      TransactionType   `db:"type" json:"type"`
	Amount    decimal.Decimal   `db:"amount" json:"amount"`
	Status    TransactionStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
}
