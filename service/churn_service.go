package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bethouse/models"
)

// Default lookback settings for the two churn modes
const (
	DefaultInactiveDays        = 30
	DefaultPatternInactiveDays = 3

	// patternLookbackDays bounds the bet history the pattern classifier
	// inspects; a player with no bets inside it is churned outright
	patternLookbackDays = 14

	// activityWindowDays is the window, ending at the player's last bet,
	// over which unique active days are counted
	activityWindowDays = 7

	// regularActiveDays is the minimum unique active days that marks a
	// player as a former regular
	regularActiveDays = 4
)

// Suggested actions for at-risk players, tiered by churn probability
const (
	actionUrgentBonus      = "Urgent: Send personalized bonus offer"
	actionReengagementMail = "Send re-engagement email"
	actionRetentionList    = "Add to retention campaign"
)

// ChurnService classifies players as churned, at-risk or healthy. Both
// modes are deterministic rule cascades evaluated top-down, first match
// wins; they are not trained models, whatever the marketing copy says.
// Classification is exclusive: each player lands in exactly one bucket.
type ChurnService struct {
	userRepo UserRepository
	betRepo  BetRepository
	now      func() time.Time
}

// NewChurnService creates a new churn service
func NewChurnService(userRepo UserRepository, betRepo BetRepository) *ChurnService {
	return &ChurnService{
		userRepo: userRepo,
		betRepo:  betRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// DetectChurn is the baseline classifier: days since the player's most
// recent activity (later of last bet and last login, falling back to
// account creation) against the inactivity threshold.
func (s *ChurnService) DetectChurn(ctx context.Context, tenantID *string, inactiveDays int) (*models.ChurnReport, error) {
	if inactiveDays <= 0 {
		inactiveDays = DefaultInactiveDays
	}
	now := s.now()

	players, err := s.userRepo.GetPlayers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	lastBets, err := s.betRepo.GetLastBetTimes(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get last bet times: %w", err)
	}

	report := &models.ChurnReport{
		GeneratedAt:  now,
		InactiveDays: inactiveDays,
	}

	for _, player := range players {
		lastActivity := player.CreatedAt
		if lastBet, ok := lastBets[player.ID]; ok && lastBet.After(lastActivity) {
			lastActivity = lastBet
		}
		if player.LastLogin != nil && player.LastLogin.After(lastActivity) {
			lastActivity = *player.LastLogin
		}

		daysSinceActivity := daysBetween(lastActivity, now)

		switch {
		case daysSinceActivity >= inactiveDays:
			report.Churned = append(report.Churned, models.ChurnedPlayer{
				UserID:           player.ID,
				DaysSinceLastBet: daysSinceActivity,
				ChurnProbability: 100,
				Reason:           fmt.Sprintf("no activity for %d+ days", inactiveDays),
			})
		case daysSinceActivity >= inactiveDays/2:
			probability := float64(daysSinceActivity) / float64(inactiveDays) * 100
			if probability > 100 {
				probability = 100
			}
			report.AtRisk = append(report.AtRisk, models.AtRiskPlayer{
				UserID:           player.ID,
				DaysSinceLastBet: daysSinceActivity,
				ChurnProbability: roundRate(probability),
				Reason:           fmt.Sprintf("inactive for %d days", daysSinceActivity),
				SuggestedAction:  actionForProbability(probability),
			})
		default:
			report.HealthyCount++
		}
	}

	finalizeChurnReport(report)
	return report, nil
}

// DetectChurnByPattern is the pattern-based classifier. It inspects the
// trailing 14 days of bets per player and compares days since the last bet
// with how regular the player was in the 7 days leading up to that bet.
// The activity window is anchored at the last bet, not at "now".
func (s *ChurnService) DetectChurnByPattern(ctx context.Context, tenantID *string, inactiveDays int) (*models.ChurnReport, error) {
	if inactiveDays <= 0 {
		inactiveDays = DefaultPatternInactiveDays
	}
	now := s.now()

	players, err := s.userRepo.GetPlayers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	betTimes, err := s.betRepo.GetBetTimesSince(ctx, now.AddDate(0, 0, -patternLookbackDays), tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bet times: %w", err)
	}

	report := &models.ChurnReport{
		GeneratedAt:  now,
		InactiveDays: inactiveDays,
	}

	for _, player := range players {
		times := betTimes[player.ID]
		if len(times) == 0 {
			report.Churned = append(report.Churned, models.ChurnedPlayer{
				UserID:           player.ID,
				DaysSinceLastBet: patternLookbackDays,
				ChurnProbability: 100,
				Reason:           "no activity in 14+ days",
			})
			continue
		}

		lastBet := times[len(times)-1]
		daysSinceLastBet := daysBetween(lastBet, now)
		uniqueActiveDays := uniqueDaysInWindow(times, lastBet)

		switch {
		case daysSinceLastBet >= inactiveDays && uniqueActiveDays >= regularActiveDays:
			// A clear regular who has gone quiet
			probability := 50 + float64(daysSinceLastBet)*5 + float64(uniqueActiveDays)*3
			if probability > 100 {
				probability = 100
			}
			report.AtRisk = append(report.AtRisk, models.AtRiskPlayer{
				UserID:           player.ID,
				DaysSinceLastBet: daysSinceLastBet,
				UniqueActiveDays: uniqueActiveDays,
				ChurnProbability: probability,
				Reason:           fmt.Sprintf("regular player (%d active days) silent for %d days", uniqueActiveDays, daysSinceLastBet),
				SuggestedAction:  actionForProbability(probability),
			})
		case daysSinceLastBet >= activityWindowDays:
			probability := float64(70 + daysSinceLastBet)
			if probability > 100 {
				probability = 100
			}
			report.Churned = append(report.Churned, models.ChurnedPlayer{
				UserID:           player.ID,
				DaysSinceLastBet: daysSinceLastBet,
				ChurnProbability: probability,
				Reason:           "no bets in over a week",
			})
		default:
			report.HealthyCount++
		}
	}

	finalizeChurnReport(report)
	return report, nil
}

// actionForProbability tiers the follow-up by how likely the player is to
// churn
func actionForProbability(probability float64) string {
	switch {
	case probability > 80:
		return actionUrgentBonus
	case probability > 60:
		return actionReengagementMail
	default:
		return actionRetentionList
	}
}

// finalizeChurnReport sorts at-risk players by descending probability and
// fills the urgent/warning/watch summary counts
func finalizeChurnReport(report *models.ChurnReport) {
	sort.Slice(report.AtRisk, func(i, j int) bool {
		return report.AtRisk[i].ChurnProbability > report.AtRisk[j].ChurnProbability
	})

	for _, p := range report.AtRisk {
		switch {
		case p.ChurnProbability > 80:
			report.Summary.Urgent++
		case p.ChurnProbability > 60:
			report.Summary.Warning++
		default:
			report.Summary.Watch++
		}
	}
}

// uniqueDaysInWindow counts distinct calendar days with at least one bet in
// the 7 days ending at the last bet (inclusive)
func uniqueDaysInWindow(times []time.Time, lastBet time.Time) int {
	windowStart := lastBet.AddDate(0, 0, -activityWindowDays)
	days := make(map[string]struct{})
	for _, t := range times {
		if t.Before(windowStart) || t.After(lastBet) {
			continue
		}
		days[t.UTC().Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

// daysBetween returns full days elapsed from a to b
func daysBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
