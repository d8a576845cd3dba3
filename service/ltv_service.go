package service

import (
	"context"
	"fmt"

	"bethouse/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LTV segment thresholds, evaluated top-down. Values are lifetime value
// from the house perspective.
var (
	ltvWhaleThreshold     = decimal.NewFromInt(10000)
	ltvVIPThreshold       = decimal.NewFromInt(5000)
	ltvHighValueThreshold = decimal.NewFromInt(1000)
	ltvRegularThreshold   = decimal.NewFromInt(100)
)

// ltvProjectionFactor is a simple linear projection of future value. It is
// a placeholder heuristic, not a model.
var ltvProjectionFactor = decimal.NewFromFloat(1.2)

// LTVService computes per-player lifetime value and tier assignment
type LTVService struct {
	betRepo BetRepository
	txRepo  TransactionRepository
}

// NewLTVService creates a new LTV service
func NewLTVService(betRepo BetRepository, txRepo TransactionRepository) *LTVService {
	return &LTVService{
		betRepo: betRepo,
		txRepo:  txRepo,
	}
}

// CalculatePlayerLTV computes lifetime value over all of a player's history.
// LTV = total stake - total winnings, so positive means the player is
// profitable for the house.
func (s *LTVService) CalculatePlayerLTV(ctx context.Context, userID string) (*models.PlayerLTV, error) {
	var (
		betStats *models.PlayerBetStats
		totals   *models.PlayerTransactionTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		betStats, err = s.betRepo.GetPlayerStats(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get player bet stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = s.txRepo.GetPlayerTotals(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get player transaction totals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ltv := betStats.TotalStake.Sub(betStats.TotalWinnings)

	return &models.PlayerLTV{
		UserID:         userID,
		TotalStake:     round2(betStats.TotalStake),
		TotalBets:      betStats.TotalBets,
		AvgStake:       round2(betStats.AvgStake),
		AvgOdds:        roundRate(betStats.AvgOdds),
		TotalWinnings:  round2(betStats.TotalWinnings),
		WonBets:        betStats.WonBets,
		WinRate:        countPercentage(betStats.WonBets, betStats.TotalBets),
		Deposits:       round2(totals.Deposits),
		Withdrawals:    round2(totals.Withdrawals),
		LTV:            round2(ltv),
		Segment:        segmentForLTV(ltv),
		Score:          ltvScore(ltv),
		ProjectedValue: round2(ltv.Mul(ltvProjectionFactor)),
	}, nil
}

// segmentForLTV assigns the tier by checking thresholds top-down; the first
// match wins
func segmentForLTV(ltv decimal.Decimal) models.PlayerSegment {
	switch {
	case ltv.GreaterThan(ltvWhaleThreshold):
		return models.SegmentWhale
	case ltv.GreaterThan(ltvVIPThreshold):
		return models.SegmentVIP
	case ltv.GreaterThan(ltvHighValueThreshold):
		return models.SegmentHighValue
	case ltv.GreaterThan(ltvRegularThreshold):
		return models.SegmentRegular
	case ltv.GreaterThan(decimal.Zero):
		return models.SegmentCasual
	default:
		return models.SegmentLowValue
	}
}

// ltvScore maps LTV onto a 0-100 scale: ltv/100 clamped at both ends
func ltvScore(ltv decimal.Decimal) float64 {
	score, _ := ltv.Div(decimal.NewFromInt(100)).Float64()
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return roundRate(score)
}
