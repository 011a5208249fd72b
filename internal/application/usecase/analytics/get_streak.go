package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// GetStreakInput selects the user and range.
type GetStreakInput struct {
	UserID uuid.UUID
	Range  entity.PeriodRange
}

// GetStreakOutput reports the longest run of consecutive calendar days
// with at least one non-excluded movement.
type GetStreakOutput struct {
	MaxStreakDays int
}

// GetStreakUseCase computes the habit-building streak shown to learners.
type GetStreakUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewGetStreakUseCase creates a new GetStreakUseCase.
func NewGetStreakUseCase(transactionRepository adapter.TransactionRepository) *GetStreakUseCase {
	return &GetStreakUseCase{transactionRepository: transactionRepository}
}

// Execute finds the maximum consecutive-day streak in range.
func (uc *GetStreakUseCase) Execute(ctx context.Context, input GetStreakInput) (*GetStreakOutput, error) {
	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, input.Range.From, input.Range.To)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	return &GetStreakOutput{MaxStreakDays: maxStreak(transactions)}, nil
}

// maxStreak walks the distinct active dates in order and tracks the
// longest consecutive run.
func maxStreak(transactions []*entity.Transaction) int {
	seen := make(map[string]struct{})
	for _, tx := range transactions {
		if tx.Excluded() {
			continue
		}
		seen[tx.OccurredAt.Format(dateLayout)] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)

	best, current := 1, 1
	prev, _ := time.ParseInLocation(dateLayout, days[0], time.UTC)
	for _, d := range days[1:] {
		day, _ := time.ParseInLocation(dateLayout, d, time.UTC)
		if day.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
		prev = day
	}
	return best
}
