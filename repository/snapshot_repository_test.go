package repository

import (
	"context"
	"testing"
	"time"

	"bethouse/models"
	"bethouse/repository/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(snapshotType models.SnapshotType) *models.AnalyticsSnapshot {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.AnalyticsSnapshot{
		ID:          uuid.NewString(),
		Type:        snapshotType,
		PeriodStart: now.Add(-24 * time.Hour),
		PeriodEnd:   now,
		Revenue: models.RevenueSnapshot{
			GGR:         decimal.NewFromInt(800),
			NGR:         decimal.NewFromInt(329),
			Turnover:    decimal.NewFromInt(10000),
			TotalStakes: decimal.NewFromInt(10000),
			HouseEdge:   8,
		},
		Betting: models.BettingSnapshot{TotalBets: 400, WonBets: 150, WinRate: 37.5},
		Players: models.PlayersSnapshot{
			PlayerMetrics: models.PlayerMetrics{TotalRegistered: 5000, ActivePlayers: 4200},
			ChurnedCount:  3,
			RetentionRate: 75,
		},
		Financial: models.FinancialSnapshot{
			TotalDeposits:    decimal.NewFromInt(5000),
			TotalWithdrawals: decimal.NewFromInt(1500),
			NetDeposits:      decimal.NewFromInt(3500),
		},
		Agents: models.AgentsSnapshot{
			TenantCount:   2,
			PlatformShare: decimal.NewFromInt(600),
			TenantShare:   decimal.NewFromInt(2400),
		},
		Status:      models.SnapshotStatusCompleted,
		GeneratedBy: "scheduler",
	}
}

func TestSnapshotRepository_CreateAndList(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSnapshotRepository(testDB.DB)
	ctx := context.Background()

	daily := testSnapshot(models.SnapshotTypeDaily)
	require.NoError(t, repo.Create(ctx, daily))
	assert.False(t, daily.CreatedAt.IsZero())

	weekly := testSnapshot(models.SnapshotTypeWeekly)
	require.NoError(t, repo.Create(ctx, weekly))

	t.Run("list all newest first", func(t *testing.T) {
		snapshots, err := repo.List(ctx, nil, 10)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
	})

	t.Run("filter by type", func(t *testing.T) {
		dailyType := models.SnapshotTypeDaily
		snapshots, err := repo.List(ctx, &dailyType, 10)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)

		got := snapshots[0]
		assert.Equal(t, daily.ID, got.ID)
		assert.True(t, got.Revenue.GGR.Equal(decimal.NewFromInt(800)), "ggr = %s", got.Revenue.GGR)
		assert.True(t, got.Revenue.NGR.Equal(decimal.NewFromInt(329)), "ngr = %s", got.Revenue.NGR)
		assert.Equal(t, int64(400), got.Betting.TotalBets)
		assert.Equal(t, int64(5000), got.Players.TotalRegistered)
		assert.Equal(t, 3, got.Players.ChurnedCount)
		assert.True(t, got.Financial.NetDeposits.Equal(decimal.NewFromInt(3500)))
		assert.Equal(t, 2, got.Agents.TenantCount)
		assert.Equal(t, "scheduler", got.GeneratedBy)
		assert.Nil(t, got.TenantID)
	})

	t.Run("limit applies", func(t *testing.T) {
		snapshots, err := repo.List(ctx, nil, 1)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
	})

	t.Run("rerun appends a new record", func(t *testing.T) {
		rerun := testSnapshot(models.SnapshotTypeDaily)
		require.NoError(t, repo.Create(ctx, rerun))

		dailyType := models.SnapshotTypeDaily
		snapshots, err := repo.List(ctx, &dailyType, 10)
		require.NoError(t, err)
		assert.Len(t, snapshots, 2)
	})
}

func TestSnapshotRepository_TenantScoped(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSnapshotRepository(testDB.DB)
	ctx := context.Background()

	testutil.InsertTenant(t, testDB.DB, testutil.CreateTestTenant("tenant-a", "Alpha"))

	tenantID := "tenant-a"
	snapshot := testSnapshot(models.SnapshotTypeMonthly)
	snapshot.TenantID = &tenantID
	require.NoError(t, repo.Create(ctx, snapshot))

	snapshots, err := repo.List(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.NotNil(t, snapshots[0].TenantID)
	assert.Equal(t, "tenant-a", *snapshots[0].TenantID)
}
