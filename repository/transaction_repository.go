package repository

import (
	"context"
	"fmt"

	"bethouse/database"
	"bethouse/models"
)

// TransactionRepository exposes the completed-transaction aggregates the
// calculators consume. Pending and failed rows never participate.
type TransactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// GetFinancialStats returns deposit, withdrawal and bonus aggregates for a
// window
func (r *TransactionRepository) GetFinancialStats(ctx context.Context, window models.TimeRange, tenantID *string) (*models.FinancialStats, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE 0 END), 0) as total_deposits,
			COALESCE(SUM(CASE WHEN type = 'withdrawal' THEN amount ELSE 0 END), 0) as total_withdrawals,
			COALESCE(SUM(CASE WHEN type = ANY($4) THEN amount ELSE 0 END), 0) as bonuses_paid,
			COUNT(CASE WHEN type = 'deposit' THEN 1 END) as deposit_count,
			COUNT(CASE WHEN type = 'withdrawal' THEN 1 END) as withdrawal_count
		FROM transactions
		WHERE status = 'completed'
		  AND created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)`

	bonusTypes := make([]string, len(models.BonusTransactionTypes))
	for i, t := range models.BonusTransactionTypes {
		bonusTypes[i] = string(t)
	}

	var stats models.FinancialStats
	err := r.q.QueryRow(ctx, query, window.From, window.To, tenantID, bonusTypes).Scan(
		&stats.TotalDeposits,
		&stats.TotalWithdrawals,
		&stats.BonusesPaid,
		&stats.DepositCount,
		&stats.WithdrawalCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial stats: %w", err)
	}

	return &stats, nil
}

// GetTrendRows returns deposit/withdrawal activity grouped by calendar
// bucket, one row per bucket, zero-filled for types with no activity
func (r *TransactionRepository) GetTrendRows(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.FinancialTrendRow, error) {
	query := `
		SELECT
			to_char(date_trunc($4, created_at), 'YYYY-MM-DD') as bucket,
			COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE 0 END), 0) as deposits,
			COUNT(CASE WHEN type = 'deposit' THEN 1 END) as deposit_count,
			COALESCE(SUM(CASE WHEN type = 'withdrawal' THEN amount ELSE 0 END), 0) as withdrawals,
			COUNT(CASE WHEN type = 'withdrawal' THEN 1 END) as withdrawal_count
		FROM transactions
		WHERE status = 'completed'
		  AND type IN ('deposit', 'withdrawal')
		  AND created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)
		GROUP BY date_trunc($4, created_at)
		ORDER BY date_trunc($4, created_at)`

	rows, err := r.q.Query(ctx, query, window.From, window.To, tenantID, string(groupBy))
	if err != nil {
		return nil, fmt.Errorf("failed to query financial trends: %w", err)
	}
	defer rows.Close()

	var trends []*models.FinancialTrendRow
	for rows.Next() {
		var t models.FinancialTrendRow
		if err := rows.Scan(&t.Date, &t.Deposits, &t.DepositCount, &t.Withdrawals, &t.WithdrawalCount); err != nil {
			return nil, fmt.Errorf("failed to scan financial trend row: %w", err)
		}
		trends = append(trends, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate financial trends: %w", err)
	}

	return trends, nil
}

// CountDepositingPlayers counts distinct users with a completed deposit in
// the window
func (r *TransactionRepository) CountDepositingPlayers(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM transactions
		WHERE status = 'completed' AND type = 'deposit'
		  AND created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)`

	var count int64
	if err := r.q.QueryRow(ctx, query, window.From, window.To, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count depositing players: %w", err)
	}

	return count, nil
}

// CountFirstTimeDepositors counts users whose earliest completed deposit
// ever falls inside the window. The minimum is taken over all history, then
// filtered to the window.
func (r *TransactionRepository) CountFirstTimeDepositors(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM (
			SELECT user_id, MIN(created_at) as first_deposit
			FROM transactions
			WHERE status = 'completed' AND type = 'deposit'
			  AND ($3::text IS NULL OR tenant_id = $3)
			GROUP BY user_id
		) first_deposits
		WHERE first_deposit >= $1 AND first_deposit < $2`

	var count int64
	if err := r.q.QueryRow(ctx, query, window.From, window.To, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count first-time depositors: %w", err)
	}

	return count, nil
}

// GetPlayerTotals returns lifetime completed deposit and withdrawal sums
// for a single player
func (r *TransactionRepository) GetPlayerTotals(ctx context.Context, userID string) (*models.PlayerTransactionTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE 0 END), 0) as deposits,
			COALESCE(SUM(CASE WHEN type = 'withdrawal' THEN amount ELSE 0 END), 0) as withdrawals
		FROM transactions
		WHERE status = 'completed' AND user_id = $1`

	var totals models.PlayerTransactionTotals
	if err := r.q.QueryRow(ctx, query, userID).Scan(&totals.Deposits, &totals.Withdrawals); err != nil {
		return nil, fmt.Errorf("failed to get player transaction totals: %w", err)
	}

	return &totals, nil
}
