package service

import (
	"context"
	"fmt"
	"sort"

	"bethouse/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Flat settlement rates for per-tenant NGR. These intentionally differ from
// DefaultNGRRates: tenant settlement has always used the flat 15% tax + 2%
// fee, and reconciling the two rate sets is an open question for the system
// owner, not something to do silently here.
const (
	tenantTaxRate = 0.15
	tenantFeeRate = 0.02
)

// TenantRevenueService computes per-tenant revenue with the platform/tenant
// revenue-share split
type TenantRevenueService struct {
	tenantRepo TenantRepository
	betRepo    BetRepository
	txRepo     TransactionRepository
}

// NewTenantRevenueService creates a new tenant revenue service
func NewTenantRevenueService(tenantRepo TenantRepository, betRepo BetRepository, txRepo TransactionRepository) *TenantRevenueService {
	return &TenantRevenueService{
		tenantRepo: tenantRepo,
		betRepo:    betRepo,
		txRepo:     txRepo,
	}
}

// GetGGRByTenant computes the revenue breakdown for every active and trial
// tenant independently, sorted by GGR descending. Tenants are settled
// concurrently; any failure fails the whole report.
func (s *TenantRevenueService) GetGGRByTenant(ctx context.Context, window models.TimeRange) ([]*models.TenantRevenue, error) {
	tenants, err := s.tenantRepo.GetActiveTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active tenants: %w", err)
	}

	results := make([]*models.TenantRevenue, len(tenants))

	g, gctx := errgroup.WithContext(ctx)
	for i, tenant := range tenants {
		g.Go(func() error {
			revenue, err := s.settleTenant(gctx, window, tenant)
			if err != nil {
				return fmt.Errorf("failed to settle tenant %s: %w", tenant.ID, err)
			}
			results[i] = revenue
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].GGR.GreaterThan(results[j].GGR)
	})

	return results, nil
}

// settleTenant computes one tenant's breakdown and split
func (s *TenantRevenueService) settleTenant(ctx context.Context, window models.TimeRange, tenant *models.Tenant) (*models.TenantRevenue, error) {
	tenantID := tenant.ID

	betStats, err := s.betRepo.GetRevenueStats(ctx, window, &tenantID)
	if err != nil {
		return nil, err
	}
	finStats, err := s.txRepo.GetFinancialStats(ctx, window, &tenantID)
	if err != nil {
		return nil, err
	}
	activePlayers, err := s.betRepo.CountActiveBettors(ctx, window, &tenantID)
	if err != nil {
		return nil, err
	}

	ggr := betStats.TotalStakes.Sub(betStats.TotalPayouts)
	taxes := ggr.Mul(decimal.NewFromFloat(tenantTaxRate))
	fees := ggr.Mul(decimal.NewFromFloat(tenantFeeRate))
	ngr := ggr.Sub(taxes).Sub(fees).Sub(finStats.BonusesPaid)

	providerShare := ggr.Mul(decimal.NewFromFloat(tenant.ProviderPercentage)).Div(decimal.NewFromInt(100))
	tenantShare := ggr.Sub(providerShare)

	return &models.TenantRevenue{
		TenantID:           tenant.ID,
		TenantName:         tenant.Name,
		TotalStakes:        round2(betStats.TotalStakes),
		TotalPayouts:       round2(betStats.TotalPayouts),
		Deposits:           round2(finStats.TotalDeposits),
		Withdrawals:        round2(finStats.TotalWithdrawals),
		BonusesPaid:        round2(finStats.BonusesPaid),
		GGR:                round2(ggr),
		NGR:                round2(ngr),
		ActivePlayers:      activePlayers,
		ProviderPercentage: tenant.ProviderPercentage,
		ProviderShare:      round2(providerShare),
		TenantShare:        round2(tenantShare),
	}, nil
}

// GetGGRTrendByTenant returns stake/payout aggregates per (tenant, bucket)
// for charting
func (s *TenantRevenueService) GetGGRTrendByTenant(ctx context.Context, window models.TimeRange, groupBy models.GroupBy) ([]*models.TenantTurnoverBucket, error) {
	buckets, err := s.betRepo.GetTenantTurnoverBuckets(ctx, window, groupBy)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant turnover buckets: %w", err)
	}

	for _, b := range buckets {
		b.TotalStakes = round2(b.TotalStakes)
		b.TotalPayouts = round2(b.TotalPayouts)
	}

	return buckets, nil
}
