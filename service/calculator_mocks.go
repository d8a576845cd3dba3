package service

import (
	"context"
	"time"

	"bethouse/models"

	"github.com/stretchr/testify/mock"
)

// MockRevenueCalculator is a mock implementation of RevenueCalculator
type MockRevenueCalculator struct {
	mock.Mock
}

func (m *MockRevenueCalculator) CalculateGGR(ctx context.Context, window models.TimeRange, tenantID *string) (*models.GGRResult, error) {
	args := m.Called(ctx, window, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GGRResult), args.Error(1)
}

func (m *MockRevenueCalculator) CalculateNGR(ctx context.Context, window models.TimeRange, tenantID *string, rates models.NGRRates) (*models.NGRBreakdown, error) {
	args := m.Called(ctx, window, tenantID, rates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NGRBreakdown), args.Error(1)
}

// MockTrendCalculator is a mock implementation of TrendCalculator
type MockTrendCalculator struct {
	mock.Mock
}

func (m *MockTrendCalculator) GetTurnover(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.TurnoverBucket, error) {
	args := m.Called(ctx, window, tenantID, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TurnoverBucket), args.Error(1)
}

func (m *MockTrendCalculator) GetFinancialTrends(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.FinancialTrendRow, error) {
	args := m.Called(ctx, window, tenantID, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FinancialTrendRow), args.Error(1)
}

// MockPlayerMetricsCalculator is a mock implementation of PlayerMetricsCalculator
type MockPlayerMetricsCalculator struct {
	mock.Mock
}

func (m *MockPlayerMetricsCalculator) GetPlayerMetrics(ctx context.Context, window models.TimeRange, tenantID *string) (*models.PlayerMetrics, error) {
	args := m.Called(ctx, window, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerMetrics), args.Error(1)
}

// MockChurnDetector is a mock implementation of ChurnDetector
type MockChurnDetector struct {
	mock.Mock
}

func (m *MockChurnDetector) DetectChurn(ctx context.Context, tenantID *string, inactiveDays int) (*models.ChurnReport, error) {
	args := m.Called(ctx, tenantID, inactiveDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChurnReport), args.Error(1)
}

func (m *MockChurnDetector) DetectChurnByPattern(ctx context.Context, tenantID *string, inactiveDays int) (*models.ChurnReport, error) {
	args := m.Called(ctx, tenantID, inactiveDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChurnReport), args.Error(1)
}

// MockRetentionCalculator is a mock implementation of RetentionCalculator
type MockRetentionCalculator struct {
	mock.Mock
}

func (m *MockRetentionCalculator) CalculateRetention(ctx context.Context, tenantID *string, cohortMonth *time.Time) (*models.RetentionReport, error) {
	args := m.Called(ctx, tenantID, cohortMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetentionReport), args.Error(1)
}

// MockTenantRevenueCalculator is a mock implementation of TenantRevenueCalculator
type MockTenantRevenueCalculator struct {
	mock.Mock
}

func (m *MockTenantRevenueCalculator) GetGGRByTenant(ctx context.Context, window models.TimeRange) ([]*models.TenantRevenue, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenantRevenue), args.Error(1)
}

func (m *MockTenantRevenueCalculator) GetGGRTrendByTenant(ctx context.Context, window models.TimeRange, groupBy models.GroupBy) ([]*models.TenantTurnoverBucket, error) {
	args := m.Called(ctx, window, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenantTurnoverBucket), args.Error(1)
}

// MockLTVCalculator is a mock implementation of LTVCalculator
type MockLTVCalculator struct {
	mock.Mock
}

func (m *MockLTVCalculator) CalculatePlayerLTV(ctx context.Context, userID string) (*models.PlayerLTV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerLTV), args.Error(1)
}

// MockSnapshotGenerator is a mock implementation of SnapshotGenerator
type MockSnapshotGenerator struct {
	mock.Mock
}

func (m *MockSnapshotGenerator) GenerateSnapshot(ctx context.Context, snapshotType models.SnapshotType, tenantID *string, window *models.TimeRange, generatedBy string) (*models.AnalyticsSnapshot, error) {
	args := m.Called(ctx, snapshotType, tenantID, window, generatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSnapshot), args.Error(1)
}
