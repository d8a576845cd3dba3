package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bethouse/models"
)

func TestPlayerMetricsService_GetPlayerMetrics(t *testing.T) {
	ctx := context.Background()
	window := testWindow()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)
	txRepo := new(MockTransactionRepository)

	userRepo.On("CountPlayers", mock.Anything, (*string)(nil)).Return(int64(5000), nil)
	userRepo.On("CountActivePlayers", mock.Anything, (*string)(nil)).Return(int64(4200), nil)
	userRepo.On("CountNewRegistrations", mock.Anything, window, (*string)(nil)).Return(int64(310), nil)
	betRepo.On("CountDistinctBettorsSince", mock.Anything, now.AddDate(0, 0, -1), (*string)(nil)).Return(int64(150), nil)
	betRepo.On("CountDistinctBettorsSince", mock.Anything, now.AddDate(0, 0, -7), (*string)(nil)).Return(int64(620), nil)
	betRepo.On("CountDistinctBettorsSince", mock.Anything, now.AddDate(0, 0, -30), (*string)(nil)).Return(int64(1800), nil)
	txRepo.On("CountDepositingPlayers", mock.Anything, window, (*string)(nil)).Return(int64(900), nil)
	txRepo.On("CountFirstTimeDepositors", mock.Anything, window, (*string)(nil)).Return(int64(120), nil)

	svc := NewPlayerMetricsService(userRepo, betRepo, txRepo)
	svc.now = func() time.Time { return now }

	metrics, err := svc.GetPlayerMetrics(ctx, window, nil)
	require.NoError(t, err)

	assert.Equal(t, &models.PlayerMetrics{
		TotalRegistered:     5000,
		ActivePlayers:       4200,
		NewRegistrations:    310,
		DailyActiveUsers:    150,
		WeeklyActiveUsers:   620,
		MonthlyActiveUsers:  1800,
		DepositingPlayers:   900,
		FirstTimeDepositors: 120,
	}, metrics)
}

func TestPlayerMetricsService_GetPlayerMetrics_CountError(t *testing.T) {
	ctx := context.Background()
	window := testWindow()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)
	txRepo := new(MockTransactionRepository)

	userRepo.On("CountPlayers", mock.Anything, (*string)(nil)).Return(int64(0), errors.New("connection refused"))
	userRepo.On("CountActivePlayers", mock.Anything, (*string)(nil)).Return(int64(0), nil).Maybe()
	userRepo.On("CountNewRegistrations", mock.Anything, window, (*string)(nil)).Return(int64(0), nil).Maybe()
	betRepo.On("CountDistinctBettorsSince", mock.Anything, mock.Anything, (*string)(nil)).Return(int64(0), nil).Maybe()
	txRepo.On("CountDepositingPlayers", mock.Anything, window, (*string)(nil)).Return(int64(0), nil).Maybe()
	txRepo.On("CountFirstTimeDepositors", mock.Anything, window, (*string)(nil)).Return(int64(0), nil).Maybe()

	svc := NewPlayerMetricsService(userRepo, betRepo, txRepo)
	svc.now = func() time.Time { return now }

	_, err := svc.GetPlayerMetrics(ctx, window, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count registered players")
}
