package admin

import (
	"context"
	"sort"
	"time"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

// GetCohortsInput is the activity window to analyze.
type GetCohortsInput struct {
	Range entity.PeriodRange
}

// GetCohortsOutput groups users by registration month with their
// activity in the window.
type GetCohortsOutput struct {
	Cohorts []entity.CohortRecord
	Totals  entity.CohortTotals
}

// GetCohortsUseCase buckets every registered user into a (year, month)
// registration cohort and measures how many were active in the window.
// Active means at least one non-excluded movement.
type GetCohortsUseCase struct {
	userRepository        adapter.UserRepository
	transactionRepository adapter.TransactionRepository
	scanTimeout           time.Duration
	workers               int
}

// NewGetCohortsUseCase creates a new GetCohortsUseCase.
func NewGetCohortsUseCase(userRepository adapter.UserRepository, transactionRepository adapter.TransactionRepository, scanTimeout time.Duration, workers int) *GetCohortsUseCase {
	return &GetCohortsUseCase{
		userRepository:        userRepository,
		transactionRepository: transactionRepository,
		scanTimeout:           scanTimeout,
		workers:               workers,
	}
}

// Execute runs the cohort scan under the configured time budget.
func (uc *GetCohortsUseCase) Execute(ctx context.Context, input GetCohortsInput) (*GetCohortsOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.scanTimeout)
	defer cancel()

	users, ledger, err := loadScanData(ctx, uc.userRepository, uc.transactionRepository, input.Range)
	if err != nil {
		return nil, err
	}

	active := make([]bool, len(users))
	err = forEachUser(ctx, users, uc.workers, func(i int, user *entity.User) {
		c := analytics.Classify(ledger[user.ID])
		active[i] = c.HasActivity()
	})
	if err != nil {
		return nil, err
	}

	type cohortKey struct{ year, month int }
	byCohort := make(map[cohortKey]*entity.CohortRecord)
	totals := entity.CohortTotals{}

	for i, user := range users {
		key := cohortKey{user.RegisteredAt.Year(), int(user.RegisteredAt.Month())}
		record, ok := byCohort[key]
		if !ok {
			record = &entity.CohortRecord{Year: key.year, Month: key.month}
			byCohort[key] = record
		}
		record.UserCount++
		totals.UserCount++
		if active[i] {
			record.ActiveCount++
			totals.ActiveCount++
		}
	}

	cohorts := make([]entity.CohortRecord, 0, len(byCohort))
	for _, record := range byCohort {
		if record.UserCount > 0 {
			record.ActivityRate = float64(record.ActiveCount) / float64(record.UserCount)
		}
		cohorts = append(cohorts, *record)
	}
	sort.Slice(cohorts, func(i, j int) bool {
		if cohorts[i].Year != cohorts[j].Year {
			return cohorts[i].Year < cohorts[j].Year
		}
		return cohorts[i].Month < cohorts[j].Month
	})

	return &GetCohortsOutput{Cohorts: cohorts, Totals: totals}, nil
}
