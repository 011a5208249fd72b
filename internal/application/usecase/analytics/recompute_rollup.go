package analytics

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// RecomputeRollupInput keys the rollup to refresh.
type RecomputeRollupInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// RecomputeRollupUseCase recomputes one calendar month's summary from
// the ledger and overwrites the stored rollup. The operation is
// idempotent: repeating it over an unchanged ledger stores the same
// value. Recomputation is always explicit; nothing updates rollups as
// a side effect of writing transactions.
type RecomputeRollupUseCase struct {
	transactionRepository adapter.TransactionRepository
	rollupStore           adapter.RollupStore
	defaultTopN           int
}

// NewRecomputeRollupUseCase creates a new RecomputeRollupUseCase.
func NewRecomputeRollupUseCase(transactionRepository adapter.TransactionRepository, rollupStore adapter.RollupStore, defaultTopN int) *RecomputeRollupUseCase {
	return &RecomputeRollupUseCase{
		transactionRepository: transactionRepository,
		rollupStore:           rollupStore,
		defaultTopN:           defaultTopN,
	}
}

// Execute rebuilds and upserts the month's summary.
func (uc *RecomputeRollupUseCase) Execute(ctx context.Context, input RecomputeRollupInput) (*entity.PeriodSummary, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}

	rng := MonthRange(input.Year, input.Month)
	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, rng.From, rng.To)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	summary := BuildSummary(input.UserID, rng, transactions, uc.defaultTopN)
	if err := uc.rollupStore.Upsert(ctx, summary); err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to store rollup", err)
	}

	slog.InfoContext(ctx, "rollup recomputed",
		"user_id", input.UserID,
		"year", input.Year,
		"month", input.Month,
		"movements", summary.Breakdown.Counts.Total,
	)

	return summary, nil
}
