package repository

import (
	"context"
	"testing"
	"time"

	"bethouse/models"
	"bethouse/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_GetFinancialStats(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	seedTenantWithPlayers(t, testDB, "tenant-a", "p1", "p2")

	now := time.Now().UTC()
	window := models.TimeRange{From: now.Add(-24 * time.Hour), To: now.Add(time.Hour)}

	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 500))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p2", "tenant-a", models.TransactionTypeDeposit, 300))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeWithdrawal, 200))
	// One row per bonus cost type, so the sum proves the whole list counts
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeBonus, 25))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeBonusCredit, 15))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p2", "tenant-a", models.TransactionTypeFreeBet, 6))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p2", "tenant-a", models.TransactionTypeCashback, 4))

	// Pending rows never count
	pending := testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 9999)
	pending.Status = models.TransactionStatusPending
	testutil.InsertTransaction(t, testDB.DB, pending)

	stats, err := repo.GetFinancialStats(ctx, window, nil)
	require.NoError(t, err)

	assert.True(t, stats.TotalDeposits.Equal(decimal.NewFromInt(800)), "deposits = %s", stats.TotalDeposits)
	assert.True(t, stats.TotalWithdrawals.Equal(decimal.NewFromInt(200)), "withdrawals = %s", stats.TotalWithdrawals)
	assert.True(t, stats.BonusesPaid.Equal(decimal.NewFromInt(50)), "bonuses = %s", stats.BonusesPaid)
	assert.Equal(t, int64(2), stats.DepositCount)
	assert.Equal(t, int64(1), stats.WithdrawalCount)
}

func TestTransactionRepository_GetTrendRows(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	seedTenantWithPlayers(t, testDB, "tenant-a", "p1")

	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)
	window := models.TimeRange{From: day1.Add(-time.Hour), To: day2.Add(24 * time.Hour)}

	dep := testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 100)
	dep.CreatedAt = day1
	testutil.InsertTransaction(t, testDB.DB, dep)
	wd := testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeWithdrawal, 30)
	wd.CreatedAt = day2
	testutil.InsertTransaction(t, testDB.DB, wd)

	// Bonus rows are excluded from the deposit/withdrawal trend
	bonus := testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeBonus, 1000)
	bonus.CreatedAt = day1
	testutil.InsertTransaction(t, testDB.DB, bonus)

	rows, err := repo.GetTrendRows(ctx, window, nil, models.GroupByDay)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-08-10", rows[0].Date)
	assert.True(t, rows[0].Deposits.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1), rows[0].DepositCount)
	assert.True(t, rows[0].Withdrawals.IsZero())
	assert.Equal(t, int64(0), rows[0].WithdrawalCount)

	assert.Equal(t, "2026-08-11", rows[1].Date)
	assert.True(t, rows[1].Withdrawals.Equal(decimal.NewFromInt(30)))
	assert.True(t, rows[1].Deposits.IsZero())
}

func TestTransactionRepository_CountFirstTimeDepositors(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	seedTenantWithPlayers(t, testDB, "tenant-a", "p1", "p2", "p3")

	now := time.Now().UTC()
	window := models.TimeRange{From: now.Add(-24 * time.Hour), To: now.Add(time.Hour)}

	// p1 first deposited long before the window; the one inside is a repeat
	oldDep := testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 50)
	oldDep.CreatedAt = now.Add(-60 * 24 * time.Hour)
	testutil.InsertTransaction(t, testDB.DB, oldDep)
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 75))

	// p2's first deposit ever is inside the window
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p2", "tenant-a", models.TransactionTypeDeposit, 20))

	count, err := repo.CountFirstTimeDepositors(ctx, window, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	depositing, err := repo.CountDepositingPlayers(ctx, window, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), depositing)
}

func TestTransactionRepository_GetPlayerTotals(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	seedTenantWithPlayers(t, testDB, "tenant-a", "p1", "p2")

	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 400))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 100))
	testutil.InsertTransaction(t, testDB.DB, testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeWithdrawal, 150))

	failed := testutil.CreateTestTransaction("p1", "tenant-a", models.TransactionTypeDeposit, 5000)
	failed.Status = models.TransactionStatusFailed
	testutil.InsertTransaction(t, testDB.DB, failed)

	totals, err := repo.GetPlayerTotals(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, totals.Deposits.Equal(decimal.NewFromInt(500)), "deposits = %s", totals.Deposits)
	assert.True(t, totals.Withdrawals.Equal(decimal.NewFromInt(150)), "withdrawals = %s", totals.Withdrawals)

	empty, err := repo.GetPlayerTotals(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, empty.Deposits.IsZero())
	assert.True(t, empty.Withdrawals.IsZero())
}
