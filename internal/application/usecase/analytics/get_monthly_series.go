package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// GetMonthlySeriesInput is an inclusive month span for one user.
type GetMonthlySeriesInput struct {
	UserID    uuid.UUID
	FromYear  int
	FromMonth int
	ToYear    int
	ToMonth   int
}

// GetMonthlySeriesOutput is the ordered, gap-filled series.
type GetMonthlySeriesOutput struct {
	Points []entity.MonthlyPoint
}

// GetMonthlySeriesUseCase produces a per-month income/consumption/savings
// series. Months without activity appear as zero points so clients can
// chart the span without stitching gaps themselves.
type GetMonthlySeriesUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewGetMonthlySeriesUseCase creates a new GetMonthlySeriesUseCase.
func NewGetMonthlySeriesUseCase(transactionRepository adapter.TransactionRepository) *GetMonthlySeriesUseCase {
	return &GetMonthlySeriesUseCase{transactionRepository: transactionRepository}
}

// Execute loads the whole span once and buckets per calendar month.
func (uc *GetMonthlySeriesUseCase) Execute(ctx context.Context, input GetMonthlySeriesInput) (*GetMonthlySeriesOutput, error) {
	if err := ValidateYearMonth(input.FromYear, input.FromMonth); err != nil {
		return nil, err
	}
	if err := ValidateYearMonth(input.ToYear, input.ToMonth); err != nil {
		return nil, err
	}

	from := time.Date(input.FromYear, time.Month(input.FromMonth), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(input.ToYear, time.Month(input.ToMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !from.Before(to) {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidDateRange, "from month must not be after to month", domainerror.ErrInvalidDateRange)
	}

	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, from, to)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	buckets := make(map[string][]*entity.Transaction)
	for _, tx := range transactions {
		key := tx.OccurredAt.Format("2006-01")
		buckets[key] = append(buckets[key], tx)
	}

	var points []entity.MonthlyPoint
	for cursor := from; cursor.Before(to); cursor = cursor.AddDate(0, 1, 0) {
		c := Classify(buckets[cursor.Format("2006-01")])
		points = append(points, entity.MonthlyPoint{
			Year:             cursor.Year(),
			Month:            int(cursor.Month()),
			IncomeTotal:      c.IncomeTotal,
			ConsumptionTotal: c.ConsumptionTotal,
			Savings:          c.IncomeTotal.Sub(c.ConsumptionTotal),
		})
	}

	return &GetMonthlySeriesOutput{Points: points}, nil
}
