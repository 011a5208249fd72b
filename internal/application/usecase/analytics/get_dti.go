package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// GetDTIInput selects the user and range.
type GetDTIInput struct {
	UserID uuid.UUID
	Range  entity.PeriodRange
}

// GetDTIOutput carries the debt-to-income ratio and its components.
type GetDTIOutput struct {
	DTI               float64
	DebtPaymentsTotal decimal.Decimal
	IncomeTotal       decimal.Decimal
}

// GetDTIUseCase computes the debt-to-income ratio for a period. Debt
// service only counts financial movements tagged as debt payments,
// never general consumption.
type GetDTIUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewGetDTIUseCase creates a new GetDTIUseCase.
func NewGetDTIUseCase(transactionRepository adapter.TransactionRepository) *GetDTIUseCase {
	return &GetDTIUseCase{transactionRepository: transactionRepository}
}

// Execute classifies the period and derives the ratio, 0 when the
// period has no income.
func (uc *GetDTIUseCase) Execute(ctx context.Context, input GetDTIInput) (*GetDTIOutput, error) {
	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, input.Range.From, input.Range.To)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	c := Classify(transactions)
	return &GetDTIOutput{
		DTI:               ratio(c.DebtPaymentsTotal, c.IncomeTotal),
		DebtPaymentsTotal: c.DebtPaymentsTotal,
		IncomeTotal:       c.IncomeTotal,
	}, nil
}
