package service

import (
	"context"
	"fmt"

	"bethouse/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultNGRRates are the platform-wide waterfall rates. The tenant
// settlement in TenantRevenueService deliberately uses a different flat
// rate set; the divergence is inherited behavior, not an oversight.
var DefaultNGRRates = models.NGRRates{
	ProviderFeeRate: 0.12,
	GatewayFeeRate:  0.025,
	TaxRate:         0.15,
}

// operationalCostRate is a fixed heuristic share of GGR covering operating
// overhead in the net-profit step.
const operationalCostRate = 0.10

// RevenueService computes GGR and the GGR -> NGR -> net-profit deduction
// waterfall for a window
type RevenueService struct {
	betRepo BetRepository
	txRepo  TransactionRepository
}

// NewRevenueService creates a new revenue service
func NewRevenueService(betRepo BetRepository, txRepo TransactionRepository) *RevenueService {
	return &RevenueService{
		betRepo: betRepo,
		txRepo:  txRepo,
	}
}

// CalculateGGR returns the gross gaming revenue breakdown for a window.
// Stakes count bets of any status; payouts only won bets.
func (s *RevenueService) CalculateGGR(ctx context.Context, window models.TimeRange, tenantID *string) (*models.GGRResult, error) {
	stats, err := s.betRepo.GetRevenueStats(ctx, window, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet revenue stats: %w", err)
	}

	ggr := stats.TotalStakes.Sub(stats.TotalPayouts)

	return &models.GGRResult{
		GGR:          round2(ggr),
		TotalStakes:  round2(stats.TotalStakes),
		TotalPayouts: round2(stats.TotalPayouts),
		TotalBets:    stats.TotalBets,
		WonBets:      stats.WonBets,
		HouseEdge:    percentage(ggr, stats.TotalStakes),
	}, nil
}

// CalculateNGR runs the full deduction waterfall. Provider fees, gateway
// fees and bonuses come off GGR to give NGR; taxes and operational costs
// come off NGR, not GGR, to give true net profit. That ordering is part of
// the contract.
func (s *RevenueService) CalculateNGR(ctx context.Context, window models.TimeRange, tenantID *string, rates models.NGRRates) (*models.NGRBreakdown, error) {
	var (
		betStats *models.BetRevenueStats
		finStats *models.FinancialStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		betStats, err = s.betRepo.GetRevenueStats(gctx, window, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get bet revenue stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		finStats, err = s.txRepo.GetFinancialStats(gctx, window, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get financial stats: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Each line is rounded before the next is derived, so the reported
	// breakdown reconciles exactly: NGR equals GGR minus the fee and bonus
	// fields as printed, and true net profit equals NGR minus taxes and
	// operational costs as printed.
	ggr := round2(betStats.TotalStakes.Sub(betStats.TotalPayouts))
	gatewayVolume := round2(finStats.TotalDeposits.Add(finStats.TotalWithdrawals))

	providerFees := round2(ggr.Mul(decimal.NewFromFloat(rates.ProviderFeeRate)))
	gatewayFees := round2(gatewayVolume.Mul(decimal.NewFromFloat(rates.GatewayFeeRate)))
	bonusesPaid := round2(finStats.BonusesPaid)

	ngr := ggr.Sub(providerFees).Sub(gatewayFees).Sub(bonusesPaid)

	taxes := round2(ggr.Mul(decimal.NewFromFloat(rates.TaxRate)))
	operationalCosts := round2(ggr.Mul(decimal.NewFromFloat(operationalCostRate)))
	trueNetProfit := ngr.Sub(taxes).Sub(operationalCosts)

	return &models.NGRBreakdown{
		GGRResult: models.GGRResult{
			GGR:          ggr,
			TotalStakes:  round2(betStats.TotalStakes),
			TotalPayouts: round2(betStats.TotalPayouts),
			TotalBets:    betStats.TotalBets,
			WonBets:      betStats.WonBets,
			HouseEdge:    percentage(betStats.TotalStakes.Sub(betStats.TotalPayouts), betStats.TotalStakes),
		},
		GatewayVolume:    gatewayVolume,
		ProviderFees:     providerFees,
		GatewayFees:      gatewayFees,
		BonusesPaid:      bonusesPaid,
		NGR:              round2(ngr),
		Taxes:            taxes,
		OperationalCosts: operationalCosts,
		TrueNetProfit:    round2(trueNetProfit),
		ProfitMargin:     percentage(trueNetProfit, ggr),
		Rates:            rates,
	}, nil
}
