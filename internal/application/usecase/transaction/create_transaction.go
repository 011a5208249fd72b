// Package transaction contains the ledger ingestion use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

const maxDescriptionLength = 220

// CreateTransactionInput carries the raw movement fields as captured
// at the boundary, before the conditional-field rules are enforced.
type CreateTransactionInput struct {
	UserID     uuid.UUID
	Kind       entity.MovementKind
	Amount     decimal.Decimal
	OccurredAt time.Time

	Description string
	Origin      entity.TransactionOrigin

	CategoryCode     string
	Essential        bool
	Fixed            bool
	Recurring        bool
	FinancialSubtype entity.FinancialSubtype

	IsInternalTransfer bool
}

// CreateTransactionUseCase appends a validated movement to the ledger.
// All conditional-field integrity lives here: downstream aggregation
// assumes every stored expense has a category and every stored
// financial movement has a subtype.
type CreateTransactionUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase.
func NewCreateTransactionUseCase(transactionRepository adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{transactionRepository: transactionRepository}
}

// Execute validates the input and appends the movement.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	tx, err := buildTransaction(input)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepository.Create(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "failed to create transaction", "error", err, "user_id", input.UserID)
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeTransactionInternalError, "failed to create transaction", err)
	}

	return tx, nil
}

// buildTransaction enforces the per-kind field rules and constructs
// the entity through its kind constructor.
func buildTransaction(input CreateTransactionInput) (*entity.Transaction, error) {
	if !entity.ValidMovementKind(input.Kind) {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeInvalidMovementKind, "invalid kind", domainerror.ErrInvalidMovementKind)
	}
	if input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeNegativeAmount, "invalid amount", domainerror.ErrNegativeAmount)
	}
	if input.OccurredAt.IsZero() {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeMissingOccurredAt, "missing occurred_at", domainerror.ErrMissingOccurredAt)
	}
	if !entity.ValidOrigin(input.Origin) {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeInvalidOrigin, "invalid origin", domainerror.ErrInvalidOrigin)
	}
	if len(input.Description) > maxDescriptionLength {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeDescriptionTooLong, "description too long", domainerror.ErrDescriptionTooLong)
	}

	if input.Kind != entity.MovementKindExpense && input.CategoryCode != "" {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeCategoryOnNonExpense, "contradictory category", domainerror.ErrCategoryOnNonExpense)
	}
	if input.Kind != entity.MovementKindFinancial && input.FinancialSubtype != "" {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeSubtypeOnNonFinancial, "contradictory subtype", domainerror.ErrSubtypeOnNonFinancial)
	}

	switch input.Kind {
	case entity.MovementKindIncome:
		return entity.NewIncome(input.UserID, input.OccurredAt, input.Amount, input.Description, input.Origin), nil

	case entity.MovementKindExpense:
		if input.CategoryCode == "" {
			return nil, domainerror.NewTransactionError(domainerror.ErrCodeMissingCategoryCode, "missing category_code", domainerror.ErrMissingCategoryCode)
		}
		if !entity.ValidCategoryCode(input.CategoryCode) {
			return nil, domainerror.NewTransactionError(domainerror.ErrCodeUnknownCategoryCode, "unknown category_code", domainerror.ErrUnknownCategoryCode)
		}
		tags := entity.ExpenseTags{
			Essential: input.Essential,
			Fixed:     input.Fixed,
			Recurring: input.Recurring,
		}
		return entity.NewExpense(input.UserID, input.OccurredAt, input.Amount, input.CategoryCode, tags, input.Description, input.Origin), nil

	case entity.MovementKindFinancial:
		if input.FinancialSubtype == "" {
			return nil, domainerror.NewTransactionError(domainerror.ErrCodeMissingFinancialSubtype, "missing financial_subtype", domainerror.ErrMissingFinancialSubtype)
		}
		if !entity.ValidFinancialSubtype(input.FinancialSubtype) {
			return nil, domainerror.NewTransactionError(domainerror.ErrCodeUnknownFinancialSubtype, "unknown financial_subtype", domainerror.ErrUnknownFinancialSubtype)
		}
		return entity.NewFinancial(input.UserID, input.OccurredAt, input.Amount, input.FinancialSubtype, input.Description, input.Origin), nil

	default:
		return entity.NewTransfer(input.UserID, input.OccurredAt, input.Amount, input.IsInternalTransfer, input.Description, input.Origin), nil
	}
}
