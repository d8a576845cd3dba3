package service

import (
	"context"
	"fmt"
	"time"

	"bethouse/models"

	"golang.org/x/sync/errgroup"
)

// PlayerMetricsService computes player population counts for a window.
// The daily/weekly/monthly active counts are trailing windows anchored at
// the time of the call, not at the report window.
type PlayerMetricsService struct {
	userRepo UserRepository
	betRepo  BetRepository
	txRepo   TransactionRepository
	now      func() time.Time
}

// NewPlayerMetricsService creates a new player metrics service
func NewPlayerMetricsService(userRepo UserRepository, betRepo BetRepository, txRepo TransactionRepository) *PlayerMetricsService {
	return &PlayerMetricsService{
		userRepo: userRepo,
		betRepo:  betRepo,
		txRepo:   txRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetPlayerMetrics fans out the independent counts concurrently and joins
// them; any failure fails the whole call.
func (s *PlayerMetricsService) GetPlayerMetrics(ctx context.Context, window models.TimeRange, tenantID *string) (*models.PlayerMetrics, error) {
	now := s.now()
	var metrics models.PlayerMetrics

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.userRepo.CountPlayers(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to count registered players: %w", err)
		}
		metrics.TotalRegistered = count
		return nil
	})
	g.Go(func() error {
		count, err := s.userRepo.CountActivePlayers(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to count active players: %w", err)
		}
		metrics.ActivePlayers = count
		return nil
	})
	g.Go(func() error {
		count, err := s.userRepo.CountNewRegistrations(gctx, window, tenantID)
		if err != nil {
			return fmt.Errorf("failed to count new registrations: %w", err)
		}
		metrics.NewRegistrations = count
		return nil
	})
	g.Go(func() error {
		count, err := s.betRepo.CountDistinctBettorsSince(gctx, now.AddDate(0, 0, -1), tenantID)
		if err != nil {
			return fmt.Errorf("failed to count daily active users: %w", err)
		}
		metrics.DailyActiveUsers = count
		return nil
	})
	g.Go(func() error {
		count, err := s.betRepo.CountDistinctBettorsSince(gctx, now.AddDate(0, 0, -7), tenantID)
		if err != nil {
			return fmt.Errorf("failed to count weekly active users: %w", err)
		}
		metrics.WeeklyActiveUsers = count
		return nil
	})
	g.Go(func() error {
		count, err := s.betRepo.CountDistinctBettorsSince(gctx, now.AddDate(0, 0, -30), tenantID)
		if err != nil {
			return fmt.Errorf("failed to count monthly active users: %w", err)
		}
		metrics.MonthlyActiveUsers = count
		return nil
	})
	g.Go(func() error {
		count, err := s.txRepo.CountDepositingPlayers(gctx, window, tenantID)
		if err != nil {
			return fmt.Errorf("failed to count depositing players: %w", err)
		}
		metrics.DepositingPlayers = count
		return nil
	})
	g.Go(func() error {
		count, err := s.txRepo.CountFirstTimeDepositors(gctx, window, tenantID)
		if err != nil {
			return fmt.Errorf("failed to count first-time depositors: %w", err)
		}
		metrics.FirstTimeDepositors = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &metrics, nil
}
