package repository

import (
	"context"
	"fmt"
	"time"

	"bethouse/database"
	"bethouse/models"
)

// UserRepository exposes the account reads the calculators consume
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// CountPlayers counts accounts with the player role
func (r *UserRepository) CountPlayers(ctx context.Context, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE role = 'player'
		  AND ($1::text IS NULL OR tenant_id = $1)`

	var count int64
	if err := r.q.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}

	return count, nil
}

// CountActivePlayers counts players with active status
func (r *UserRepository) CountActivePlayers(ctx context.Context, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE role = 'player' AND status = 'active'
		  AND ($1::text IS NULL OR tenant_id = $1)`

	var count int64
	if err := r.q.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active players: %w", err)
	}

	return count, nil
}

// CountNewRegistrations counts players created within the window
func (r *UserRepository) CountNewRegistrations(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE role = 'player'
		  AND created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)`

	var count int64
	if err := r.q.QueryRow(ctx, query, window.From, window.To, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count new registrations: %w", err)
	}

	return count, nil
}

// GetPlayers returns all player accounts, optionally scoped to a tenant.
// The churn classifiers iterate this set.
func (r *UserRepository) GetPlayers(ctx context.Context, tenantID *string) ([]*models.User, error) {
	query := `
		SELECT id, role, tenant_id, commission_rate, status, created_at, last_login
		FROM users
		WHERE role = 'player'
		  AND ($1::text IS NULL OR tenant_id = $1)
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Role, &u.TenantID, &u.CommissionRate, &u.Status, &u.CreatedAt, &u.LastLogin)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetCohortPlayerIDs returns the ids of players registered within
// [monthStart, monthEnd)
func (r *UserRepository) GetCohortPlayerIDs(ctx context.Context, monthStart, monthEnd time.Time, tenantID *string) ([]string, error) {
	query := `
		SELECT id
		FROM users
		WHERE role = 'player'
		  AND created_at >= $1 AND created_at < $2
		  AND ($3::text IS NULL OR tenant_id = $3)`

	rows, err := r.q.Query(ctx, query, monthStart, monthEnd, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort players: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cohort player id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cohort players: %w", err)
	}

	return ids, nil
}
