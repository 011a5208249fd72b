package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

// GetRollupInput keys the stored rollup to read.
type GetRollupInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetRollupUseCase reads a stored monthly rollup. Absence is a
// not-found error, never an implicit recomputation: a missing rollup
// and a computed all-zero summary are different facts.
type GetRollupUseCase struct {
	rollupStore adapter.RollupStore
}

// NewGetRollupUseCase creates a new GetRollupUseCase.
func NewGetRollupUseCase(rollupStore adapter.RollupStore) *GetRollupUseCase {
	return &GetRollupUseCase{rollupStore: rollupStore}
}

// Execute returns the stored summary for the key.
func (uc *GetRollupUseCase) Execute(ctx context.Context, input GetRollupInput) (*entity.PeriodSummary, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}
	return uc.rollupStore.Get(ctx, input.UserID, input.Year, input.Month)
}
