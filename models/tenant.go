package models

import "time"

// TenantStatus represents the lifecycle state of a tenant
type TenantStatus string

const (
	TenantStatusActive TenantStatus = "active"
	TenantStatusTrial  TenantStatus = "trial"
	TenantStatusClosed TenantStatus = "closed"
)

// Tenant represents an operator tenant. ProviderPercentage is the platform's
// cut of the tenant's GGR (0-100); the complement is the tenant's share.
type Tenant struct {
	ID                 string       `db:"id" json:"id"`
	Name               string       `db:"name" json:"name"`
	Status             TenantStatus `db:"status" json:"status"`
	ProviderPercentage float64      `db:"provider_percentage" json:"providerPercentage"`
	CreatedAt          time.Time    `db:"created_at" json:"createdAt"`
}
