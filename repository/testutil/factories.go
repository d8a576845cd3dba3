package testutil

import (
	"context"
	"testing"
	"time"

	"bethouse/database"
	"bethouse/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// CreateTestTenant creates a tenant with default values
func CreateTestTenant(id, name string) *models.Tenant {
	return &models.Tenant{
		ID:                 id,
		Name:               name,
		Status:             models.TenantStatusActive,
		ProviderPercentage: 10,
		CreatedAt:          time.Now().UTC(),
	}
}

// CreateTestPlayer creates a player account belonging to a tenant
func CreateTestPlayer(id, tenantID string) *models.User {
	return &models.User{
		ID:        id,
		Role:      models.UserRolePlayer,
		TenantID:  tenantID,
		Status:    models.UserStatusActive,
		CreatedAt: time.Now().UTC(),
	}
}

// CreateTestBet creates a settled bet with a specific stake and status
func CreateTestBet(userID, tenantID string, stake float64, status models.BetStatus) *models.Bet {
	stakeDec := decimal.NewFromFloat(stake)
	odds := decimal.NewFromFloat(2.0)
	bet := &models.Bet{
		ID:           uuid.NewString(),
		UserID:       userID,
		TenantID:     tenantID,
		Stake:        stakeDec,
		TotalOdds:    odds,
		Status:       status,
		PotentialWin: stakeDec.Mul(odds),
		CreatedAt:    time.Now().UTC(),
	}
	if status == models.BetStatusWon {
		bet.ActualWin = bet.PotentialWin
	}
	return bet
}

// CreateTestTransaction creates a completed transaction
func CreateTestTransaction(userID, tenantID string, txType models.TransactionType, amount float64) *models.Transaction {
	return &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		TenantID:  tenantID,
		Type:      txType,
		Amount:    decimal.NewFromFloat(amount),
		Status:    models.TransactionStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
}

// InsertTenant writes a tenant row
func InsertTenant(t *testing.T, db *database.DB, tenant *models.Tenant) {
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO tenants (id, name, status, provider_percentage, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tenant.ID, tenant.Name, tenant.Status, tenant.ProviderPercentage, tenant.CreatedAt)
	require.NoError(t, err)
}

// InsertUser writes a user row
func InsertUser(t *testing.T, db *database.DB, user *models.User) {
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO users (id, role, tenant_id, commission_rate, status, created_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Role, user.TenantID, user.CommissionRate, user.Status, user.CreatedAt, user.LastLogin)
	require.NoError(t, err)
}

// InsertBet writes a bet row
func InsertBet(t *testing.T, db *database.DB, bet *models.Bet) {
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO bets (id, user_id, tenant_id, stake, total_odds, status, potential_win, actual_win, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		bet.ID, bet.UserID, bet.TenantID, bet.Stake, bet.TotalOdds, bet.Status, bet.PotentialWin, bet.ActualWin, bet.CreatedAt)
	require.NoError(t, err)
}

// InsertTransaction writes a transaction row
func InsertTransaction(t *testing.T, db *database.DB, tx *models.Transaction) {
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO transactions (id, user_id, tenant_id, type, amount, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tx.ID, tx.UserID, tx.TenantID, tx.Type, tx.Amount, tx.Status, tx.CreatedAt)
	require.NoError(t, err)
}
