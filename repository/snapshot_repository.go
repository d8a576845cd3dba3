package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bethouse/database"
	"bethouse/models"
)

// SnapshotRepository is the single write path of the analytics engine.
// Snapshots are append-only; there is no update or delete.
type SnapshotRepository struct {
	q Queryable
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *database.DB) *SnapshotRepository {
	return &SnapshotRepository{q: db.Pool}
}

// Create inserts a snapshot record
func (r *SnapshotRepository) Create(ctx context.Context, snapshot *models.AnalyticsSnapshot) error {
	revenue, err := json.Marshal(snapshot.Revenue)
	if err != nil {
		return fmt.Errorf("failed to marshal revenue section: %w", err)
	}
	betting, err := json.Marshal(snapshot.Betting)
	if err != nil {
		return fmt.Errorf("failed to marshal betting section: %w", err)
	}
	players, err := json.Marshal(snapshot.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal players section: %w", err)
	}
	financial, err := json.Marshal(snapshot.Financial)
	if err != nil {
		return fmt.Errorf("failed to marshal financial section: %w", err)
	}
	agents, err := json.Marshal(snapshot.Agents)
	if err != nil {
		return fmt.Errorf("failed to marshal agents section: %w", err)
	}

	query := `
		INSERT INTO analytics_snapshots
			(id, type, period_start, period_end, tenant_id, revenue, betting, players, financial, agents, status, generated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	err = r.q.QueryRow(ctx, query,
		snapshot.ID,
		snapshot.Type,
		snapshot.PeriodStart,
		snapshot.PeriodEnd,
		snapshot.TenantID,
		revenue,
		betting,
		players,
		financial,
		agents,
		snapshot.Status,
		snapshot.GeneratedBy,
	).Scan(&snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

// List returns the most recent snapshots, newest first, optionally filtered
// by type
func (r *SnapshotRepository) List(ctx context.Context, snapshotType *models.SnapshotType, limit int) ([]*models.AnalyticsSnapshot, error) {
	query := `
		SELECT id, type, period_start, period_end, tenant_id, revenue, betting, players, financial, agents, status, generated_by, created_at
		FROM analytics_snapshots
		WHERE ($1::text IS NULL OR type = $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, snapshotType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.AnalyticsSnapshot
	for rows.Next() {
		var s models.AnalyticsSnapshot
		var revenue, betting, players, financial, agents []byte
		err := rows.Scan(
			&s.ID,
			&s.Type,
			&s.PeriodStart,
			&s.PeriodEnd,
			&s.TenantID,
			&revenue,
			&betting,
			&players,
			&financial,
			&agents,
			&s.Status,
			&s.GeneratedBy,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		if err := json.Unmarshal(revenue, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to unmarshal revenue section: %w", err)
		}
		if err := json.Unmarshal(betting, &s.Betting); err != nil {
			return nil, fmt.Errorf("failed to unmarshal betting section: %w", err)
		}
		if err := json.Unmarshal(players, &s.Players); err != nil {
			return nil, fmt.Errorf("failed to unmarshal players section: %w", err)
		}
		if err := json.Unmarshal(financial, &s.Financial); err != nil {
			return nil, fmt.Errorf("failed to unmarshal financial section: %w", err)
		}
		if err := json.Unmarshal(agents, &s.Agents); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agents section: %w", err)
		}

		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}
