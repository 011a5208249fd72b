package admin

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

func newSegmentationUseCase(userRepo *fakeUserRepository, txRepo *fakeTransactionRepository) *GetSegmentationUseCase {
	return NewGetSegmentationUseCase(userRepo, txRepo,
		decimal.NewFromInt(10000), decimal.NewFromInt(20000), time.Minute, 4)
}

func TestGetSegmentationUseCase_ReferenceSources(t *testing.T) {
	declared := userWithProfileIncome(20000)
	silent := registeredUser(2025, 1)
	observed := registeredUser(2025, 1)

	userRepo := &fakeUserRepository{users: []*entity.User{declared, silent, observed}}
	txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(declared.ID, marchDay(1), amount(5000), "", entity.OriginManual),
		entity.NewExpense(declared.ID, marchDay(2), amount(1000), "01", entity.ExpenseTags{}, "", entity.OriginManual),
		entity.NewIncome(observed.ID, marchDay(1), amount(8000), "", entity.OriginManual),
		entity.NewExpense(observed.ID, marchDay(2), amount(2000), "01", entity.ExpenseTags{}, "", entity.OriginManual),
	}}

	uc := newSegmentationUseCase(userRepo, txRepo)
	output, err := uc.Execute(context.Background(), GetSegmentationInput{Range: marchRange()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byUser := make(map[string]entity.SegmentationDetail)
	for _, d := range output.Details {
		byUser[d.UserID.String()] = d
	}

	t.Run("declared profile income wins", func(t *testing.T) {
		d := byUser[declared.ID.String()]
		if d.ReferenceSource != entity.ReferenceProfile {
			t.Errorf("source = %s, want profile", d.ReferenceSource)
		}
		// 20000 sits at the high threshold boundary.
		if d.IncomeTier != entity.TierHigh {
			t.Errorf("tier = %s, want high", d.IncomeTier)
		}
		// savings 4000 over the declared 20000
		if d.SavingsRate == nil || *d.SavingsRate != 0.2 {
			t.Errorf("savings rate = %v, want 0.2", d.SavingsRate)
		}
	})

	t.Run("observed income fallback", func(t *testing.T) {
		d := byUser[observed.ID.String()]
		if d.ReferenceSource != entity.ReferenceObserved {
			t.Errorf("source = %s, want observed", d.ReferenceSource)
		}
		if d.IncomeTier != entity.TierLow {
			t.Errorf("tier = %s, want low for observed 8000", d.IncomeTier)
		}
		// savings 6000 over the observed 8000
		if d.SavingsRate == nil || *d.SavingsRate != 0.75 {
			t.Errorf("savings rate = %v, want 0.75", d.SavingsRate)
		}
	})

	t.Run("no reference at all", func(t *testing.T) {
		d := byUser[silent.ID.String()]
		if d.ReferenceSource != entity.ReferenceNone {
			t.Errorf("source = %s, want none", d.ReferenceSource)
		}
		if d.IncomeTier != entity.TierUnknown {
			t.Errorf("tier = %s, want unknown", d.IncomeTier)
		}
		if d.SavingsRate != nil {
			t.Errorf("savings rate = %v, want nil", *d.SavingsRate)
		}
	})

	t.Run("group counts and order", func(t *testing.T) {
		if len(output.Groups) != 4 {
			t.Fatalf("len(Groups) = %d, want 4", len(output.Groups))
		}
		wantOrder := []entity.IncomeTier{entity.TierLow, entity.TierMedium, entity.TierHigh, entity.TierUnknown}
		wantCounts := []int{1, 0, 1, 1}
		for i, g := range output.Groups {
			if g.IncomeTier != wantOrder[i] {
				t.Errorf("group[%d] tier = %s, want %s", i, g.IncomeTier, wantOrder[i])
			}
			if g.UserCount != wantCounts[i] {
				t.Errorf("group[%d] count = %d, want %d", i, g.UserCount, wantCounts[i])
			}
		}
	})
}

func TestGetSegmentationUseCase_TierBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		income int64
		want   entity.IncomeTier
	}{
		{"below low threshold", 9999, entity.TierLow},
		{"at low threshold", 10000, entity.TierMedium},
		{"below high threshold", 19999, entity.TierMedium},
		{"at high threshold", 20000, entity.TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := userWithProfileIncome(tt.income)
			userRepo := &fakeUserRepository{users: []*entity.User{user}}

			uc := newSegmentationUseCase(userRepo, &fakeTransactionRepository{})
			output, err := uc.Execute(context.Background(), GetSegmentationInput{Range: marchRange()})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Details[0].IncomeTier != tt.want {
				t.Errorf("tier = %s, want %s", output.Details[0].IncomeTier, tt.want)
			}
		})
	}
}

func TestGetSegmentationUseCase_MeanSavingsRateSkipsUnknown(t *testing.T) {
	first := userWithProfileIncome(5000)
	second := userWithProfileIncome(8000)
	silent := registeredUser(2025, 1)

	userRepo := &fakeUserRepository{users: []*entity.User{first, second, silent}}
	txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
		entity.NewIncome(first.ID, marchDay(1), amount(5000), "", entity.OriginManual),
		entity.NewExpense(first.ID, marchDay(2), amount(2500), "01", entity.ExpenseTags{}, "", entity.OriginManual),
		entity.NewIncome(second.ID, marchDay(1), amount(8000), "", entity.OriginManual),
	}}

	uc := newSegmentationUseCase(userRepo, txRepo)
	output, err := uc.Execute(context.Background(), GetSegmentationInput{Range: marchRange()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both profiled users are in the low tier: rates 0.5 and 1.0.
	var low entity.SegmentationGroup
	for _, g := range output.Groups {
		if g.IncomeTier == entity.TierLow {
			low = g
		}
	}
	if low.UserCount != 2 {
		t.Fatalf("low tier count = %d, want 2", low.UserCount)
	}
	if low.MeanSavingsRate != 0.75 {
		t.Errorf("low tier mean savings rate = %v, want 0.75", low.MeanSavingsRate)
	}
}

func TestGetSegmentationUseCase_DetailsSortedByUserID(t *testing.T) {
	userRepo := &fakeUserRepository{users: []*entity.User{
		registeredUser(2025, 1), registeredUser(2025, 1), registeredUser(2025, 1),
	}}

	uc := newSegmentationUseCase(userRepo, &fakeTransactionRepository{})
	output, err := uc.Execute(context.Background(), GetSegmentationInput{Range: marchRange()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(output.Details); i++ {
		if output.Details[i-1].UserID.String() > output.Details[i].UserID.String() {
			t.Fatal("details are not sorted by user id")
		}
	}
}
