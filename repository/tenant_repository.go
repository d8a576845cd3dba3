package repository

import (
	"context"
	"fmt"

	"bethouse/database"
	"bethouse/models"
)

// TenantRepository exposes the tenant reads the revenue splitter consumes
type TenantRepository struct {
	q Queryable
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *database.DB) *TenantRepository {
	return &TenantRepository{q: db.Pool}
}

// GetActiveTenants returns tenants in active or trial status, the set the
// revenue splitter settles
func (r *TenantRepository) GetActiveTenants(ctx context.Context) ([]*models.Tenant, error) {
	query := `
		SELECT id, name, status, provider_percentage, created_at
		FROM tenants
		WHERE status IN ('active', 'trial')
		ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.ProviderPercentage, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenants: %w", err)
	}

	return tenants, nil
}
