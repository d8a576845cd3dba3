package models

import "time"

// UserRole represents the role of an account
type UserRole string

const (
	UserRolePlayer   UserRole = "player"
	UserRoleAgent    UserRole = "agent"
	UserRoleSubAgent UserRole = "sub_agent"
)

// UserStatus represents the account state
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents an account record in the store
type User struct {
	ID             string     `db:"id" json:"id"`
	Role           UserRole   `db:"role" json:"role"`
	TenantID       string     `db:"tenant_id" json:"tenantId"`
	CommissionRate float64    `db:"commission_rate" json:"commissionRate"`
	Status         UserStatus `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	LastLogin      *time.Time `db:"last_login" json:"lastLogin,omitempty"`
}
