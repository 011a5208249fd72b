package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// Trend labels for the month-over-month savings movement.
const (
	TrendPositive = "positive"
	TrendNegative = "negative"
	TrendStable   = "stable"
)

// GetMonthlyVariationInput compares a month against the one before it.
type GetMonthlyVariationInput struct {
	UserID uuid.UUID
	Year   int
	Month  int

	// Budget, when set, adds a consumption-vs-budget comparison.
	Budget *decimal.Decimal

	// AllowZeroBase makes percentage changes defined even when the
	// previous month's figure is zero (reported as +100% growth, or 0%
	// when both months are zero). Off by default: a zero base yields a
	// nil percentage.
	AllowZeroBase bool
}

// VariationMetric is one figure's month-over-month movement.
type VariationMetric struct {
	Current  decimal.Decimal
	Previous decimal.Decimal
	Delta    decimal.Decimal
	// PctChange is nil when the previous value is zero and zero-base
	// percentages are not allowed.
	PctChange *float64
}

// BudgetComparison relates the month's consumption to a caller budget.
type BudgetComparison struct {
	Budget           decimal.Decimal
	ConsumptionDelta decimal.Decimal
	// PctOfBudget is nil when the budget is zero.
	PctOfBudget *float64
}

// GetMonthlyVariationOutput is the full comparison.
type GetMonthlyVariationOutput struct {
	Year  int
	Month int

	Income      VariationMetric
	Consumption VariationMetric
	Savings     VariationMetric

	// Trend labels the savings delta.
	Trend string

	Budget *BudgetComparison
}

// GetMonthlyVariationUseCase compares a calendar month's KPIs against
// the previous month and, optionally, against a caller-supplied budget.
type GetMonthlyVariationUseCase struct {
	transactionRepository adapter.TransactionRepository
}

// NewGetMonthlyVariationUseCase creates a new GetMonthlyVariationUseCase.
func NewGetMonthlyVariationUseCase(transactionRepository adapter.TransactionRepository) *GetMonthlyVariationUseCase {
	return &GetMonthlyVariationUseCase{transactionRepository: transactionRepository}
}

// Execute classifies both months in one ledger read and derives deltas.
func (uc *GetMonthlyVariationUseCase) Execute(ctx context.Context, input GetMonthlyVariationInput) (*GetMonthlyVariationOutput, error) {
	if err := ValidateYearMonth(input.Year, input.Month); err != nil {
		return nil, err
	}

	current := MonthRange(input.Year, input.Month)
	previous := entity.PeriodRange{From: current.From.AddDate(0, -1, 0), To: current.From}

	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, previous.From, current.To)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	var currentTxs, previousTxs []*entity.Transaction
	for _, tx := range transactions {
		if tx.OccurredAt.Before(current.From) {
			previousTxs = append(previousTxs, tx)
		} else {
			currentTxs = append(currentTxs, tx)
		}
	}

	cur := Classify(currentTxs)
	prev := Classify(previousTxs)

	curSavings := cur.IncomeTotal.Sub(cur.ConsumptionTotal)
	prevSavings := prev.IncomeTotal.Sub(prev.ConsumptionTotal)

	out := &GetMonthlyVariationOutput{
		Year:        input.Year,
		Month:       input.Month,
		Income:      variation(cur.IncomeTotal, prev.IncomeTotal, input.AllowZeroBase),
		Consumption: variation(cur.ConsumptionTotal, prev.ConsumptionTotal, input.AllowZeroBase),
		Savings:     variation(curSavings, prevSavings, input.AllowZeroBase),
		Trend:       trendOf(curSavings.Sub(prevSavings)),
	}

	if input.Budget != nil {
		out.Budget = compareBudget(cur.ConsumptionTotal, *input.Budget)
	}

	return out, nil
}

func variation(current, previous decimal.Decimal, allowZeroBase bool) VariationMetric {
	m := VariationMetric{
		Current:  current,
		Previous: previous,
		Delta:    current.Sub(previous),
	}
	if previous.IsZero() {
		if !allowZeroBase {
			return m
		}
		pct := 0.0
		if !current.IsZero() {
			pct = 1.0
		}
		m.PctChange = &pct
		return m
	}
	pct := m.Delta.Div(previous.Abs()).InexactFloat64()
	m.PctChange = &pct
	return m
}

func compareBudget(consumption, budget decimal.Decimal) *BudgetComparison {
	cmp := &BudgetComparison{
		Budget:           budget,
		ConsumptionDelta: consumption.Sub(budget),
	}
	if !budget.IsZero() {
		pct := consumption.Div(budget).InexactFloat64()
		cmp.PctOfBudget = &pct
	}
	return cmp
}

func trendOf(savingsDelta decimal.Decimal) string {
	switch {
	case savingsDelta.IsPositive():
		return TrendPositive
	case savingsDelta.IsNegative():
		return TrendNegative
	default:
		return TrendStable
	}
}
