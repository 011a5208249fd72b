package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// GetCompositionInput selects the range and ranking depth.
type GetCompositionInput struct {
	UserID uuid.UUID
	Range  entity.PeriodRange
	TopN   int
}

// GetCompositionOutput is the consumption share per category.
type GetCompositionOutput struct {
	ConsumptionTotal decimal.Decimal
	Items            []entity.CategoryTotal
	OthersTotal      decimal.Decimal
}

// GetCompositionUseCase answers "where did the money go" for a period.
type GetCompositionUseCase struct {
	transactionRepository adapter.TransactionRepository
	defaultTopN           int
}

// NewGetCompositionUseCase creates a new GetCompositionUseCase.
func NewGetCompositionUseCase(transactionRepository adapter.TransactionRepository, defaultTopN int) *GetCompositionUseCase {
	return &GetCompositionUseCase{
		transactionRepository: transactionRepository,
		defaultTopN:           defaultTopN,
	}
}

// Execute ranks the period's consumption categories.
func (uc *GetCompositionUseCase) Execute(ctx context.Context, input GetCompositionInput) (*GetCompositionOutput, error) {
	topN := input.TopN
	if topN == 0 {
		topN = uc.defaultTopN
	}
	if topN < 0 {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidTopN, "invalid top parameter", domainerror.ErrInvalidTopN)
	}

	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, input.Range.From, input.Range.To)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	c := Classify(transactions)
	items, others := topCategories(c.CategoryTotals, c.ConsumptionTotal, topN)

	return &GetCompositionOutput{
		ConsumptionTotal: c.ConsumptionTotal,
		Items:            items,
		OthersTotal:      others,
	}, nil
}
