package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// Alert messages attached to a summary when its figures cross the
// literacy thresholds surfaced in the client UI.
const (
	alertNegativeSavings = "consumption exceeded income this period"
	alertHighDTI         = "debt payments above 40% of income"
	alertNoIncome        = "spending recorded without any income"
)

var dtiAlertThreshold = decimal.NewFromFloat(0.40)

// BuildSummary computes the full KPI bundle for one user over a
// half-open range. It is deterministic: recomputing over an unchanged
// ledger yields the same figures. ComputedAt is a wall-clock stamp and
// the one field outside that contract.
func BuildSummary(userID uuid.UUID, rng entity.PeriodRange, transactions []*entity.Transaction, topN int) *entity.PeriodSummary {
	c := Classify(transactions)

	savings := c.IncomeTotal.Sub(c.ConsumptionTotal)

	summary := &entity.PeriodSummary{
		UserID:     userID,
		Range:      rng,
		ComputedAt: time.Now().UTC(),
		Resume: entity.PeriodResume{
			IncomeTotal:         c.IncomeTotal,
			ConsumptionTotal:    c.ConsumptionTotal,
			OtherFinancialTotal: c.OtherFinancialTotal,
			DebtPaymentsTotal:   c.DebtPaymentsTotal,
			InvestmentsTotal:    c.InvestmentsTotal,
			Savings:             savings,
			SavingsRate:         ratio(savings, c.IncomeTotal),
			DTI:                 ratio(c.DebtPaymentsTotal, c.IncomeTotal),
		},
		Breakdown: entity.PeriodBreakdown{
			TagTotals: c.TagTotals,
			Counts:    c.Counts,
		},
	}

	// A range that covers exactly one calendar month carries its rollup key.
	if y, m, ok := calendarMonth(rng); ok {
		summary.Year = y
		summary.Month = m
	}

	summary.Breakdown.TopCategories, summary.Breakdown.OthersTotal = topCategories(c.CategoryTotals, c.ConsumptionTotal, topN)
	summary.Alerts = buildAlerts(summary.Resume)

	return summary
}

// topCategories ranks consumption categories by total descending, ties
// broken by ascending code so the ranking is stable across runs. The
// remainder beyond n is folded into an "others" total.
func topCategories(totals map[string]decimal.Decimal, consumption decimal.Decimal, n int) ([]entity.CategoryTotal, decimal.Decimal) {
	ranked := make([]entity.CategoryTotal, 0, len(totals))
	for code, total := range totals {
		ranked = append(ranked, entity.CategoryTotal{
			CategoryCode: code,
			Total:        total,
			Percentage:   ratio(total, consumption),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].Total.Cmp(ranked[j].Total)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].CategoryCode < ranked[j].CategoryCode
	})

	others := decimal.Zero
	if n > 0 && len(ranked) > n {
		for _, c := range ranked[n:] {
			others = others.Add(c.Total)
		}
		ranked = ranked[:n]
	}
	return ranked, others
}

func buildAlerts(resume entity.PeriodResume) []string {
	var alerts []string
	if resume.Savings.IsNegative() {
		alerts = append(alerts, alertNegativeSavings)
	}
	if decimal.NewFromFloat(resume.DTI).GreaterThan(dtiAlertThreshold) {
		alerts = append(alerts, alertHighDTI)
	}
	if resume.IncomeTotal.IsZero() && resume.ConsumptionTotal.IsPositive() {
		alerts = append(alerts, alertNoIncome)
	}
	return alerts
}

// ratio divides two amounts into a plain float ratio, guarding the
// zero denominator instead of propagating an error or NaN.
func ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).InexactFloat64()
}

// calendarMonth reports whether the range covers exactly one calendar
// month and returns its key when it does.
func calendarMonth(rng entity.PeriodRange) (year, month int, ok bool) {
	if rng.From.Day() != 1 || rng.From.Hour() != 0 || rng.From.Minute() != 0 || rng.From.Second() != 0 {
		return 0, 0, false
	}
	if !rng.From.AddDate(0, 1, 0).Equal(rng.To) {
		return 0, 0, false
	}
	return rng.From.Year(), int(rng.From.Month()), true
}

// ComputeSummaryInput carries the parameters for an on-demand summary.
type ComputeSummaryInput struct {
	UserID uuid.UUID
	Range  entity.PeriodRange
	TopN   int
}

// ComputeSummaryUseCase computes a KPI summary for an arbitrary range
// directly from the ledger, without touching the rollup store.
type ComputeSummaryUseCase struct {
	transactionRepository adapter.TransactionRepository
	defaultTopN           int
}

// NewComputeSummaryUseCase creates a new ComputeSummaryUseCase.
func NewComputeSummaryUseCase(transactionRepository adapter.TransactionRepository, defaultTopN int) *ComputeSummaryUseCase {
	return &ComputeSummaryUseCase{
		transactionRepository: transactionRepository,
		defaultTopN:           defaultTopN,
	}
}

// Execute loads the user's transactions in range and aggregates them.
func (uc *ComputeSummaryUseCase) Execute(ctx context.Context, input ComputeSummaryInput) (*entity.PeriodSummary, error) {
	topN := input.TopN
	if topN == 0 {
		topN = uc.defaultTopN
	}
	if topN < 0 {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidTopN, "invalid top parameter", domainerror.ErrInvalidTopN)
	}

	transactions, err := uc.transactionRepository.FindByUserAndRange(ctx, input.UserID, input.Range.From, input.Range.To)
	if err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	return BuildSummary(input.UserID, input.Range, transactions, topN), nil
}
