package service

import (
	"context"
	"fmt"

	"bethouse/models"
)

// TrendService computes time-bucketed stake and money-movement series
type TrendService struct {
	betRepo BetRepository
	txRepo  TransactionRepository
}

// NewTrendService creates a new trend service
func NewTrendService(betRepo BetRepository, txRepo TransactionRepository) *TrendService {
	return &TrendService{
		betRepo: betRepo,
		txRepo:  txRepo,
	}
}

// GetTurnover returns stake sum, bet count, average stake and average odds
// per calendar bucket, sorted ascending by bucket
func (s *TrendService) GetTurnover(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.TurnoverBucket, error) {
	buckets, err := s.betRepo.GetTurnoverBuckets(ctx, window, tenantID, groupBy)
	if err != nil {
		return nil, fmt.Errorf("failed to get turnover buckets: %w", err)
	}

	for _, b := range buckets {
		b.TotalStakes = round2(b.TotalStakes)
		b.AvgStake = round2(b.AvgStake)
		b.AvgOdds = roundRate(b.AvgOdds)
	}

	return buckets, nil
}

// GetFinancialTrends returns deposit and withdrawal activity per calendar
// bucket, one row per bucket with zero-filled sides
func (s *TrendService) GetFinancialTrends(ctx context.Context, window models.TimeRange, tenantID *string, groupBy models.GroupBy) ([]*models.FinancialTrendRow, error) {
	rows, err := s.txRepo.GetTrendRows(ctx, window, tenantID, groupBy)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial trend rows: %w", err)
	}

	for _, r := range rows {
		r.Deposits = round2(r.Deposits)
		r.Withdrawals = round2(r.Withdrawals)
	}

	return rows, nil
}
