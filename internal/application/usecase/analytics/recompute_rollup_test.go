package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

func TestRecomputeRollupUseCase(t *testing.T) {
	userID := uuid.New()
	repo := &fakeTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(1000), "", entity.OriginManual),
		entity.NewExpense(userID, day(2), amount(300), "01", entity.ExpenseTags{}, "", entity.OriginManual),
	}}
	store := newFakeRollupStore()

	uc := NewRecomputeRollupUseCase(repo, store, 5)
	summary, err := uc.Execute(context.Background(), RecomputeRollupInput{UserID: userID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Resume.Savings.Equal(amount(700)) {
		t.Errorf("Savings = %s, want 700", summary.Resume.Savings)
	}
	stored, err := store.Get(context.Background(), userID, 2025, 3)
	if err != nil {
		t.Fatalf("rollup not stored: %v", err)
	}
	if !stored.Resume.IncomeTotal.Equal(amount(1000)) {
		t.Errorf("stored IncomeTotal = %s, want 1000", stored.Resume.IncomeTotal)
	}
}

func TestRecomputeRollupUseCase_Idempotent(t *testing.T) {
	userID := uuid.New()
	repo := &fakeTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(500), "", entity.OriginManual),
	}}
	store := newFakeRollupStore()
	uc := NewRecomputeRollupUseCase(repo, store, 5)

	first, err := uc.Execute(context.Background(), RecomputeRollupInput{UserID: userID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), RecomputeRollupInput{UserID: userID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.upserts != 2 {
		t.Errorf("upserts = %d, want 2", store.upserts)
	}
	if !first.Resume.IncomeTotal.Equal(second.Resume.IncomeTotal) || first.Resume.SavingsRate != second.Resume.SavingsRate {
		t.Error("repeated recomputation produced a different summary")
	}
}

func TestRecomputeRollupUseCase_InvalidKey(t *testing.T) {
	uc := NewRecomputeRollupUseCase(&fakeTransactionRepository{}, newFakeRollupStore(), 5)

	if _, err := uc.Execute(context.Background(), RecomputeRollupInput{UserID: uuid.New(), Year: 1900, Month: 1}); err == nil {
		t.Error("expected error for invalid year")
	}
	if _, err := uc.Execute(context.Background(), RecomputeRollupInput{UserID: uuid.New(), Year: 2025, Month: 0}); err == nil {
		t.Error("expected error for invalid month")
	}
}

func TestGetRollupUseCase_NotFound(t *testing.T) {
	uc := NewGetRollupUseCase(newFakeRollupStore())
	if _, err := uc.Execute(context.Background(), GetRollupInput{UserID: uuid.New(), Year: 2025, Month: 3}); err == nil {
		t.Error("expected not-found error for absent rollup")
	}
}
