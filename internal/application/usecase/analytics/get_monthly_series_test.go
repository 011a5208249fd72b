package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

func TestGetMonthlySeriesUseCase_GapFilling(t *testing.T) {
	userID := uuid.New()
	repo := &fakeTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(userID, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), amount(1000), "", entity.OriginManual),
		// February has no activity
		entity.NewExpense(userID, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), amount(200), "01", entity.ExpenseTags{}, "", entity.OriginManual),
	}}

	uc := NewGetMonthlySeriesUseCase(repo)
	output, err := uc.Execute(context.Background(), GetMonthlySeriesInput{
		UserID: userID, FromYear: 2025, FromMonth: 1, ToYear: 2025, ToMonth: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3", len(output.Points))
	}

	jan, feb, mar := output.Points[0], output.Points[1], output.Points[2]
	if jan.Month != 1 || !jan.IncomeTotal.Equal(amount(1000)) || !jan.Savings.Equal(amount(1000)) {
		t.Errorf("january point = %+v", jan)
	}
	if feb.Month != 2 || !feb.IncomeTotal.IsZero() || !feb.ConsumptionTotal.IsZero() {
		t.Errorf("february gap point = %+v, want zeros", feb)
	}
	if mar.Month != 3 || !mar.ConsumptionTotal.Equal(amount(200)) || !mar.Savings.Equal(amount(-200)) {
		t.Errorf("march point = %+v", mar)
	}
}

func TestGetMonthlySeriesUseCase_YearBoundary(t *testing.T) {
	userID := uuid.New()
	repo := &fakeTransactionRepository{}

	uc := NewGetMonthlySeriesUseCase(repo)
	output, err := uc.Execute(context.Background(), GetMonthlySeriesInput{
		UserID: userID, FromYear: 2024, FromMonth: 11, ToYear: 2025, ToMonth: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Points) != 4 {
		t.Fatalf("len(Points) = %d, want 4", len(output.Points))
	}
	if output.Points[2].Year != 2025 || output.Points[2].Month != 1 {
		t.Errorf("third point = (%d, %d), want (2025, 1)", output.Points[2].Year, output.Points[2].Month)
	}
}

func TestGetMonthlySeriesUseCase_InvertedSpan(t *testing.T) {
	uc := NewGetMonthlySeriesUseCase(&fakeTransactionRepository{})
	_, err := uc.Execute(context.Background(), GetMonthlySeriesInput{
		UserID: uuid.New(), FromYear: 2025, FromMonth: 5, ToYear: 2025, ToMonth: 2,
	})
	if err == nil {
		t.Error("expected error for inverted month span")
	}
}
