package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
	"github.com/finlit-cms/backend/internal/integration/persistence/model"
)

// rollupRepository implements adapter.RollupStore over the
// period_summaries table.
type rollupRepository struct {
	db *gorm.DB
}

// NewRollupRepository creates a new rollup repository instance.
func NewRollupRepository(db *gorm.DB) adapter.RollupStore {
	return &rollupRepository{
		db: db,
	}
}

// Upsert stores the summary, overwriting any existing row for the
// (user_id, year, month) key. Concurrent writers resolve last-wins;
// both derive from the same deterministic aggregation.
func (r *rollupRepository) Upsert(ctx context.Context, summary *entity.PeriodSummary) error {
	summaryModel, err := model.PeriodSummaryFromEntity(summary)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"range_from", "range_to", "computed_at",
			"income_total", "consumption_total", "other_financial_total",
			"debt_payments_total", "investments_total", "savings",
			"savings_rate", "dti",
			"top_categories", "tag_totals", "counts", "alerts",
			"updated_at",
		}),
	}).Create(summaryModel)
	return result.Error
}

// Get returns the stored summary for the key. Absence maps to the
// coded not-found error, distinct from an all-zero summary.
func (r *rollupRepository) Get(ctx context.Context, userID uuid.UUID, year, month int) (*entity.PeriodSummary, error) {
	var summaryModel model.PeriodSummaryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&summaryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeRollupNotFound, "rollup not found", domainerror.ErrRollupNotFound)
		}
		return nil, result.Error
	}
	return summaryModel.ToEntity()
}
