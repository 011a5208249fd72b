package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 200
)

// ListTransactionsInput scopes and paginates a ledger listing.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Filter adapter.TransactionFilter
}

// ListTransactionsUseCase lists a user's movements newest first.
type ListTransactionsUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase.
func NewListTransactionsUseCase(transactionRepository adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepository: transactionRepository}
}

// Execute normalizes the pagination and delegates to the repository.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*entity.TransactionListResult, error) {
	filter := input.Filter
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidDateRange, "from must be before to", domainerror.ErrInvalidDateRange)
	}
	if filter.Kind != nil && !entity.ValidMovementKind(*filter.Kind) {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeInvalidMovementKind, "invalid kind filter", domainerror.ErrInvalidMovementKind)
	}

	result, err := uc.transactionRepository.List(ctx, input.UserID, filter)
	if err != nil {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeTransactionInternalError, "failed to list transactions", err)
	}
	return result, nil
}
