package repository

import (
	"context"
	"fmt"
	"time"

	"bethouse/database"
	"bethouse/models"
)

// BetRepository exposes the bet aggregates the calculators consume.
// All reads treat the bets table as append-only.
type BetRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// GetRevenueStats returns the raw GGR aggregates for a window. Stakes count
// bets of any status; payouts only won bets.
func (r *BetRepository) GetRevenueStats(ctx context.Context, window models.TimeRange, tenantID *string) (*models.BetRevenueStats, error) {
	query := `
		SELECT
			COUNT(*) as total_bets,
			COUNT(CASE WHEN status = 'won' THEN 1 END) as won_bets,
			COALESCE(SUM(stake), 0) as total_stakes,
			COALESCE(SUM(CASE WHEN status = 'won' THEN actual_win ELSE 0 END), 0) as total_payouts
		FROM bets
		WHERE created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)`

	var stats models.BetRevenueStats
	err := r.q.QueryRow(ctx, query, window.From, window.To, tenantID).Scan(
		&stats.TotalBets,
		&stats.WonBets,
		&stats.TotalStakes,
		&stats.TotalPayouts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue stats: %w", err)
	}

	return &stats, nil
}

// GetTurnoverBuckets returns stake aggregates grouped by calendar bucket,
// sorted ascending by bucket
func (r *BetRepository) GetTurnoverBuckets(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.TurnoverBucket, error) {
	query := `
		SELECT
			to_char(date_trunc($4, created_at), 'YYYY-MM-DD') as bucket,
			COALESCE(SUM(stake), 0) as total_stakes,
			COUNT(*) as bet_count,
			COALESCE(AVG(stake), 0) as avg_stake,
			COALESCE(AVG(total_odds), 0) as avg_odds
		FROM bets
		WHERE created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)
		GROUP BY date_trunc($4, created_at)
		ORDER BY date_trunc($4, created_at)`

	rows, err := r.q.Query(ctx, query, window.From, window.To, tenantID, string(groupBy))
	if err != nil {
		return nil, fmt.Errorf("failed to query turnover buckets: %w", err)
	}
	defer rows.Close()

	var buckets []*models.TurnoverBucket
	for rows.Next() {
		var b models.TurnoverBucket
		if err := rows.Scan(&b.Date, &b.TotalStakes, &b.BetCount, &b.AvgStake, &b.AvgOdds); err != nil {
			return nil, fmt.Errorf("failed to scan turnover bucket: %w", err)
		}
		buckets = append(buckets, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turnover buckets: %w", err)
	}

	return buckets, nil
}

// GetTenantTurnoverBuckets returns stake and payout aggregates grouped by
// (tenant, bucket) for per-tenant trend charts
func (r *BetRepository) GetTenantTurnoverBuckets(ctx context.Context, window models.TimeRange, groupBy models.GroupBy) ([]*models.TenantTurnoverBucket, error) {
	query := `
		SELECT
			tenant_id,
			to_char(date_trunc($3, created_at), 'YYYY-MM-DD') as bucket,
			COALESCE(SUM(stake), 0) as total_stakes,
			COALESCE(SUM(CASE WHEN status = 'won' THEN actual_win ELSE 0 END), 0) as total_payouts,
			COUNT(*) as bet_count
		FROM bets
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY tenant_id, date_trunc($3, created_at)
		ORDER BY tenant_id, date_trunc($3, created_at)`

	rows, err := r.q.Query(ctx, query, window.From, window.To, string(groupBy))
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant turnover buckets: %w", err)
	}
	defer rows.Close()

	var buckets []*models.TenantTurnoverBucket
	for rows.Next() {
		var b models.TenantTurnoverBucket
		if err := rows.Scan(&b.TenantID, &b.Date, &b.TotalStakes, &b.TotalPayouts, &b.BetCount); err != nil {
			return nil, fmt.Errorf("failed to scan tenant turnover bucket: %w", err)
		}
		buckets = append(buckets, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenant turnover buckets: %w", err)
	}

	return buckets, nil
}

// CountDistinctBettorsSince counts distinct users with at least one bet
// since the given time. Used for the trailing DAU/WAU/MAU windows.
func (r *BetRepository) CountDistinctBettorsSince(ctx context.Context, since time.Time, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM bets
		WHERE created_at >= $1
		  AND ($2::text IS NULL OR tenant_id = $2)`

	var count int64
	if err := r.q.QueryRow(ctx, query, since, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct bettors: %w", err)
	}

	return count, nil
}

// CountActiveBettors counts distinct users with at least one bet inside the
// window
func (r *BetRepository) CountActiveBettors(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM bets
		WHERE created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)`

	var count int64
	if err := r.q.QueryRow(ctx, query, window.From, window.To, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active bettors: %w", err)
	}

	return count, nil
}

// CountActiveInCohort counts how many of the given users have a bet since
// the given time
func (r *BetRepository) CountActiveInCohort(ctx context.Context, userIDs []string, since time.Time) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM bets
		WHERE user_id = ANY($1) AND created_at >= $2`

	var count int64
	if err := r.q.QueryRow(ctx, query, userIDs, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active cohort members: %w", err)
	}

	return count, nil
}

// GetPlayerStats returns lifetime betting aggregates for a single player
func (r *BetRepository) GetPlayerStats(ctx context.Context, userID string) (*models.PlayerBetStats, error) {
	query := `
		SELECT
			COUNT(*) as total_bets,
			COALESCE(SUM(stake), 0) as total_stake,
			COALESCE(AVG(stake), 0) as avg_stake,
			COALESCE(AVG(total_odds), 0) as avg_odds,
			COUNT(CASE WHEN status = 'won' THEN 1 END) as won_bets,
			COALESCE(SUM(CASE WHEN status = 'won' THEN actual_win ELSE 0 END), 0) as total_winnings
		FROM bets
		WHERE user_id = $1`

	var stats models.PlayerBetStats
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&stats.TotalBets,
		&stats.TotalStake,
		&stats.AvgStake,
		&stats.AvgOdds,
		&stats.WonBets,
		&stats.TotalWinnings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get player bet stats: %w", err)
	}

	return &stats, nil
}

// GetLastBetTimes returns the most recent bet time per user
func (r *BetRepository) GetLastBetTimes(ctx context.Context, tenantID *string) (map[string]time.Time, error) {
	query := `
		SELECT user_id, MAX(created_at)
		FROM bets
		WHERE ($1::text IS NULL OR tenant_id = $1)
		GROUP BY user_id`

	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query last bet times: %w", err)
	}
	defer rows.Close()

	lastBets := make(map[string]time.Time)
	for rows.Next() {
		var userID string
		var lastBet time.Time
		if err := rows.Scan(&userID, &lastBet); err != nil {
			return nil, fmt.Errorf("failed to scan last bet time: %w", err)
		}
		lastBets[userID] = lastBet
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate last bet times: %w", err)
	}

	return lastBets, nil
}

// GetBetTimesSince returns bet timestamps since the given time grouped by
// user, each user's timestamps in ascending order
func (r *BetRepository) GetBetTimesSince(ctx context.Context, since time.Time, tenantID *string) (map[string][]time.Time, error) {
	query := `
		SELECT user_id, created_at
		FROM bets
		WHERE created_at >= $1
		  AND ($2::text IS NULL OR tenant_id = $2)
		ORDER BY user_id, created_at`

	rows, err := r.q.Query(ctx, query, since, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet times since %v: %w", since, err)
	}
	defer rows.Close()

	betTimes := make(map[string][]time.Time)
	for rows.Next() {
		var userID string
		var createdAt time.Time
		if err := rows.Scan(&userID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan bet time: %w", err)
		}
		betTimes[userID] = append(betTimes[userID], createdAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bet times: %w", err)
	}

	return betTimes, nil
}
