package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// fakeTransactionRepository serves transactions from memory.
type fakeTransactionRepository struct {
	transactions []*entity.Transaction
	err          error
}

func (f *fakeTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.transactions = append(f.transactions, transaction)
	return nil
}

func (f *fakeTransactionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*entity.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID && !tx.OccurredAt.Before(from) && tx.OccurredAt.Before(to) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (f *fakeTransactionRepository) FindAllInRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*entity.Transaction
	for _, tx := range f.transactions {
		if !tx.OccurredAt.Before(from) && tx.OccurredAt.Before(to) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (f *fakeTransactionRepository) List(ctx context.Context, userID uuid.UUID, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*entity.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	return &entity.TransactionListResult{
		Transactions: result,
		Total:        int64(len(result)),
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   1,
	}, nil
}

// fakeRollupStore keeps rollups in memory.
type fakeRollupStore struct {
	summaries map[string]*entity.PeriodSummary
	upserts   int
	err       error
}

func newFakeRollupStore() *fakeRollupStore {
	return &fakeRollupStore{summaries: make(map[string]*entity.PeriodSummary)}
}

func (f *fakeRollupStore) Upsert(ctx context.Context, summary *entity.PeriodSummary) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	f.summaries[rollupTestKey(summary.UserID, summary.Year, summary.Month)] = summary
	return nil
}

func (f *fakeRollupStore) Get(ctx context.Context, userID uuid.UUID, year, month int) (*entity.PeriodSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	summary, ok := f.summaries[rollupTestKey(userID, year, month)]
	if !ok {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeRollupNotFound, "rollup not found", domainerror.ErrRollupNotFound)
	}
	return summary, nil
}

func rollupTestKey(userID uuid.UUID, year, month int) string {
	return userID.String() + ":" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
