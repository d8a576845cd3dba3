package service

import (
	"context"
	"time"

	"bethouse/models"

	"github.com/stretchr/testify/mock"
)

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) GetRevenueStats(ctx context.Context, window models.TimeRange, tenantID *string) (*models.BetRevenueStats, error) {
	args := m.Called(ctx, window, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetRevenueStats), args.Error(1)
}

func (m *MockBetRepository) GetTurnoverBuckets(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.TurnoverBucket, error) {
	args := m.Called(ctx, window, tenantID, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TurnoverBucket), args.Error(1)
}

func (m *MockBetRepository) GetTenantTurnoverBuckets(ctx context.Context, window models.TimeRange, groupBy models.GroupBy) ([]*models.TenantTurnoverBucket, error) {
	args := m.Called(ctx, window, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenantTurnoverBucket), args.Error(1)
}

func (m *MockBetRepository) CountDistinctBettorsSince(ctx context.Context, since time.Time, tenantID *string) (int64, error) {
	args := m.Called(ctx, since, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBetRepository) CountActiveBettors(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	args := m.Called(ctx, window, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBetRepository) CountActiveInCohort(ctx context.Context, userIDs []string, since time.Time) (int64, error) {
	args := m.Called(ctx, userIDs, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBetRepository) GetPlayerStats(ctx context.Context, userID string) (*models.PlayerBetStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerBetStats), args.Error(1)
}

func (m *MockBetRepository) GetLastBetTimes(ctx context.Context, tenantID *string) (map[string]time.Time, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Time), args.Error(1)
}

func (m *MockBetRepository) GetBetTimesSince(ctx context.Context, since time.Time, tenantID *string) (map[string][]time.Time, error) {
	args := m.Called(ctx, since, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]time.Time), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetFinancialStats(ctx context.Context, window models.TimeRange, tenantID *string) (*models.FinancialStats, error) {
	args := m.Called(ctx, window, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FinancialStats), args.Error(1)
}

func (m *MockTransactionRepository) GetTrendRows(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.FinancialTrendRow, error) {
	args := m.Called(ctx, window, tenantID, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FinancialTrendRow), args.Error(1)
}

func (m *MockTransactionRepository) CountDepositingPlayers(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	args := m.Called(ctx, window, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountFirstTimeDepositors(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	args := m.Called(ctx, window, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) GetPlayerTotals(ctx context.Context, userID string) (*models.PlayerTransactionTotals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerTransactionTotals), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CountPlayers(ctx context.Context, tenantID *string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountActivePlayers(ctx context.Context, tenantID *string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountNewRegistrations(ctx context.Context, window models.TimeRange, tenantID *string) (int64, error) {
	args := m.Called(ctx, window, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetPlayers(ctx context.Context, tenantID *string) ([]*models.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetCohortPlayerIDs(ctx context.Context, monthStart, monthEnd time.Time, tenantID *string) ([]string, error) {
	args := m.Called(ctx, monthStart, monthEnd, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetActiveTenants(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Create(ctx context.Context, snapshot *models.AnalyticsSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) List(ctx context.Context, snapshotType *models.SnapshotType, limit int) ([]*models.AnalyticsSnapshot, error) {
	args := m.Called(ctx, snapshotType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AnalyticsSnapshot), args.Error(1)
}
