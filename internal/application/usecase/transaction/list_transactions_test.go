package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

func TestListTransactionsUseCase_PaginationDefaults(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", 0, 0, 1, 50},
		{"negative values get defaults", -3, -10, 1, 50},
		{"limit capped at maximum", 2, 500, 2, 200},
		{"explicit values pass through", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTransactionRepository{}
			uc := NewListTransactionsUseCase(repo)

			_, err := uc.Execute(context.Background(), ListTransactionsInput{
				UserID: uuid.New(),
				Filter: adapter.TransactionFilter{Page: tt.page, Limit: tt.limit},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastFilter.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", repo.lastFilter.Page, tt.wantPage)
			}
			if repo.lastFilter.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", repo.lastFilter.Limit, tt.wantLimit)
			}
		})
	}
}

func TestListTransactionsUseCase_ScopedToUser(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	when := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &fakeTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(owner, when, decimal.NewFromInt(100), "", entity.OriginManual),
		entity.NewIncome(other, when, decimal.NewFromInt(200), "", entity.OriginManual),
	}}

	uc := NewListTransactionsUseCase(repo)
	result, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: owner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("Total = %d, want 1", result.Total)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].UserID != owner {
		t.Error("listing leaked another user's transactions")
	}
}

func TestListTransactionsUseCase_InvalidFilters(t *testing.T) {
	uc := NewListTransactionsUseCase(&fakeTransactionRepository{})

	t.Run("inverted range", func(t *testing.T) {
		from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), ListTransactionsInput{
			UserID: uuid.New(),
			Filter: adapter.TransactionFilter{From: &from, To: &to},
		})
		if err == nil {
			t.Error("expected error for inverted range")
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		kind := entity.MovementKind("withdrawal")
		_, err := uc.Execute(context.Background(), ListTransactionsInput{
			UserID: uuid.New(),
			Filter: adapter.TransactionFilter{Kind: &kind},
		})
		if err == nil {
			t.Error("expected error for unknown kind filter")
		}
	})
}
