package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bethouse/models"
)

func churnTestNow() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func player(id string, createdDaysAgo int, lastLogin *time.Time) *models.User {
	return &models.User{
		ID:        id,
		Role:      models.UserRolePlayer,
		TenantID:  "tenant-1",
		Status:    models.UserStatusActive,
		CreatedAt: churnTestNow().AddDate(0, 0, -createdDaysAgo),
		LastLogin: lastLogin,
	}
}

func TestChurnService_DetectChurn(t *testing.T) {
	ctx := context.Background()
	now := churnTestNow()
	login := now.AddDate(0, 0, -18)

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)

	userRepo.On("GetPlayers", ctx, (*string)(nil)).Return([]*models.User{
		player("gone", 60, nil),
		player("fading", 60, nil),
		player("lurker", 50, &login),
		player("active", 60, nil),
	}, nil)
	betRepo.On("GetLastBetTimes", ctx, (*string)(nil)).Return(map[string]time.Time{
		"gone":   now.AddDate(0, 0, -40),
		"fading": now.AddDate(0, 0, -20),
		"active": now.AddDate(0, 0, -5),
	}, nil)

	svc := NewChurnService(userRepo, betRepo)
	svc.now = churnTestNow

	report, err := svc.DetectChurn(ctx, nil, 30)
	require.NoError(t, err)

	require.Len(t, report.Churned, 1)
	assert.Equal(t, "gone", report.Churned[0].UserID)
	assert.Equal(t, 40, report.Churned[0].DaysSinceLastBet)
	assert.Equal(t, float64(100), report.Churned[0].ChurnProbability)
	assert.Equal(t, "no activity for 30+ days", report.Churned[0].Reason)

	// Sorted by descending probability
	require.Len(t, report.AtRisk, 2)
	assert.Equal(t, "fading", report.AtRisk[0].UserID)
	assert.Equal(t, 66.67, report.AtRisk[0].ChurnProbability)
	assert.Equal(t, actionReengagementMail, report.AtRisk[0].SuggestedAction)
	assert.Equal(t, "lurker", report.AtRisk[1].UserID)
	assert.Equal(t, float64(60), report.AtRisk[1].ChurnProbability)
	assert.Equal(t, actionRetentionList, report.AtRisk[1].SuggestedAction)

	assert.Equal(t, 1, report.HealthyCount)
	assert.Equal(t, models.ChurnSummary{Urgent: 0, Warning: 1, Watch: 1}, report.Summary)
	assert.Equal(t, 30, report.InactiveDays)
	assert.Equal(t, now, report.GeneratedAt)
}

func TestChurnService_DetectChurn_ExclusiveBuckets(t *testing.T) {
	ctx := context.Background()
	now := churnTestNow()

	players := make([]*models.User, 0, 45)
	lastBets := make(map[string]time.Time, 45)
	for i := 0; i < 45; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		players = append(players, player(id, 90, nil))
		lastBets[id] = now.AddDate(0, 0, -i)
	}

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)
	userRepo.On("GetPlayers", ctx, (*string)(nil)).Return(players, nil)
	betRepo.On("GetLastBetTimes", ctx, (*string)(nil)).Return(lastBets, nil)

	svc := NewChurnService(userRepo, betRepo)
	svc.now = churnTestNow

	report, err := svc.DetectChurn(ctx, nil, 30)
	require.NoError(t, err)

	total := len(report.Churned) + len(report.AtRisk) + report.HealthyCount
	assert.Equal(t, len(players), total)
	assert.Len(t, report.Churned, 15)
	assert.Len(t, report.AtRisk, 15)
	assert.Equal(t, 15, report.HealthyCount)
}

func TestChurnService_DetectChurn_DefaultInactiveDays(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)
	userRepo.On("GetPlayers", ctx, (*string)(nil)).Return([]*models.User{}, nil)
	betRepo.On("GetLastBetTimes", ctx, (*string)(nil)).Return(map[string]time.Time{}, nil)

	svc := NewChurnService(userRepo, betRepo)
	svc.now = churnTestNow

	report, err := svc.DetectChurn(ctx, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultInactiveDays, report.InactiveDays)
}

func TestChurnService_DetectChurn_RepositoryError(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)
	userRepo.On("GetPlayers", ctx, (*string)(nil)).Return(nil, errors.New("connection refused"))

	svc := NewChurnService(userRepo, betRepo)
	svc.now = churnTestNow

	_, err := svc.DetectChurn(ctx, nil, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get players")
}

func TestChurnService_DetectChurnByPattern(t *testing.T) {
	ctx := context.Background()
	now := churnTestNow()
	lookbackStart := now.AddDate(0, 0, -patternLookbackDays)

	// A regular: bets on 5 distinct days in the week before the last bet,
	// then silent for 4 days
	regularLast := now.AddDate(0, 0, -4)
	regularBets := []time.Time{
		regularLast.AddDate(0, 0, -4),
		regularLast.AddDate(0, 0, -3),
		regularLast.AddDate(0, 0, -2),
		regularLast.AddDate(0, 0, -1),
		regularLast,
	}

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)

	userRepo.On("GetPlayers", ctx, (*string)(nil)).Return([]*models.User{
		player("regular", 90, nil),
		player("casual", 90, nil),
		player("ghost", 90, nil),
		player("active", 90, nil),
	}, nil)
	betRepo.On("GetBetTimesSince", ctx, lookbackStart, (*string)(nil)).Return(map[string][]time.Time{
		"regular": regularBets,
		"casual":  {now.AddDate(0, 0, -10)},
		"active":  {now.AddDate(0, 0, -1)},
	}, nil)

	svc := NewChurnService(userRepo, betRepo)
	svc.now = churnTestNow

	report, err := svc.DetectChurnByPattern(ctx, nil, 0)
	require.NoError(t, err)

	// 50 + 4 days silent * 5 + 5 active days * 3
	require.Len(t, report.AtRisk, 1)
	atRisk := report.AtRisk[0]
	assert.Equal(t, "regular", atRisk.UserID)
	assert.Equal(t, 4, atRisk.DaysSinceLastBet)
	assert.Equal(t, 5, atRisk.UniqueActiveDays)
	assert.Equal(t, float64(85), atRisk.ChurnProbability)
	assert.Equal(t, actionUrgentBonus, atRisk.SuggestedAction)
	assert.Equal(t, "regular player (5 active days) silent for 4 days", atRisk.Reason)

	require.Len(t, report.Churned, 2)
	churnedByID := make(map[string]models.ChurnedPlayer, len(report.Churned))
	for _, c := range report.Churned {
		churnedByID[c.UserID] = c
	}
	ghost := churnedByID["ghost"]
	assert.Equal(t, patternLookbackDays, ghost.DaysSinceLastBet)
	assert.Equal(t, float64(100), ghost.ChurnProbability)
	assert.Equal(t, "no activity in 14+ days", ghost.Reason)
	casual := churnedByID["casual"]
	assert.Equal(t, 10, casual.DaysSinceLastBet)
	assert.Equal(t, float64(80), casual.ChurnProbability)
	assert.Equal(t, "no bets in over a week", casual.Reason)

	assert.Equal(t, 1, report.HealthyCount)
	assert.Equal(t, models.ChurnSummary{Urgent: 1, Warning: 0, Watch: 0}, report.Summary)
	assert.Equal(t, DefaultPatternInactiveDays, report.InactiveDays)
}

func TestChurnService_DetectChurnByPattern_ProbabilityCapped(t *testing.T) {
	ctx := context.Background()
	now := churnTestNow()
	lookbackStart := now.AddDate(0, 0, -patternLookbackDays)

	// 6 days silent with 6 active days would score 50+30+18=98; 7 active
	// days pushes past the cap
	last := now.AddDate(0, 0, -6)
	bets := make([]time.Time, 0, 7)
	for i := 6; i >= 0; i-- {
		bets = append(bets, last.AddDate(0, 0, -i))
	}

	userRepo := new(MockUserRepository)
	betRepo := new(MockBetRepository)
	userRepo.On("GetPlayers", ctx, (*string)(nil)).Return([]*models.User{
		player("daily", 90, nil),
	}, nil)
	betRepo.On("GetBetTimesSince", ctx, lookbackStart, (*string)(nil)).Return(map[string][]time.Time{
		"daily": bets,
	}, nil)

	svc := NewChurnService(userRepo, betRepo)
	svc.now = churnTestNow

	report, err := svc.DetectChurnByPattern(ctx, nil, 3)
	require.NoError(t, err)

	require.Len(t, report.AtRisk, 1)
	assert.Equal(t, float64(100), report.AtRisk[0].ChurnProbability)
	assert.Equal(t, 7, report.AtRisk[0].UniqueActiveDays)
}

func TestUniqueDaysInWindow(t *testing.T) {
	lastBet := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{
			name:  "single bet",
			times: []time.Time{lastBet},
			want:  1,
		},
		{
			name: "same day collapses",
			times: []time.Time{
				lastBet.Add(-3 * time.Hour),
				lastBet.Add(-1 * time.Hour),
				lastBet,
			},
			want: 1,
		},
		{
			name: "bets before the window are ignored",
			times: []time.Time{
				lastBet.AddDate(0, 0, -10),
				lastBet.AddDate(0, 0, -2),
				lastBet,
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueDaysInWindow(tt.times, lastBet))
		})
	}
}
