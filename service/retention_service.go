package service

import (
	"context"
	"fmt"
	"time"

	"bethouse/models"
)

// retentionWindowDays is the trailing activity window a cohort member must
// have bet in to count as retained
const retentionWindowDays = 30

// RetentionService computes cohort-based retention: the share of a
// registration-month cohort with a bet in the trailing 30 days
type RetentionService struct {
	userRepo UserRepository
	betRepo  BetRepository
	now      func() time.Time
}

// NewRetentionService creates a new retention service
func NewRetentionService(userRepo UserRepository, betRepo BetRepository) *RetentionService {
	return &RetentionService{
		userRepo: userRepo,
		betRepo:  betRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CalculateRetention computes the retention rate for the cohort registered
// in the given calendar month, defaulting to the previous month. An empty
// cohort yields a zero rate, not an error.
func (s *RetentionService) CalculateRetention(ctx context.Context, tenantID *string, cohortMonth *time.Time) (*models.RetentionReport, error) {
	now := s.now()

	var monthStart time.Time
	if cohortMonth != nil {
		m := cohortMonth.UTC()
		monthStart = time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthStart = firstOfCurrent.AddDate(0, -1, 0)
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	cohortIDs, err := s.userRepo.GetCohortPlayerIDs(ctx, monthStart, monthEnd, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cohort players: %w", err)
	}

	report := &models.RetentionReport{
		CohortMonth: monthStart.Format("2006-01"),
		CohortSize:  int64(len(cohortIDs)),
	}
	if len(cohortIDs) == 0 {
		return report, nil
	}

	retained, err := s.betRepo.CountActiveInCohort(ctx, cohortIDs, now.AddDate(0, 0, -retentionWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to count retained players: %w", err)
	}

	report.Retained = retained
	report.RetentionRate = countPercentage(retained, report.CohortSize)

	return report, nil
}
