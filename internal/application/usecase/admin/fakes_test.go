package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

type fakeUserRepository struct {
	users []*entity.User
	err   error
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, context.Canceled
}

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

func registeredUser(year, month int) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		Role:         entity.RoleUser,
		RegisteredAt: time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC),
	}
}

func userWithProfileIncome(income int64) *entity.User {
	u := registeredUser(2025, 1)
	v := decimal.NewFromInt(income)
	u.ProfileIncome = &v
	return u
}

func marchRange() entity.PeriodRange {
	return entity.PeriodRange{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func marchDay(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func amount(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
