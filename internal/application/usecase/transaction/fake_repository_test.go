package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

type fakeTransactionRepository struct {
	transactions []*entity.Transaction
	err          error
	lastFilter   adapter.TransactionFilter
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
	return f.transactions, nil
}

func (f *fakeTransactionRepository) List(ctx context.Context, userID uuid.UUID, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter
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
