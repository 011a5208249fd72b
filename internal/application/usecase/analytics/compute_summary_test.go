package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func marchRange() entity.PeriodRange {
	return MonthRange(2025, 3)
}

func amount(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestBuildSummary_BasicKPIs(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(1000), "salary", entity.OriginManual),
		entity.NewExpense(userID, day(2), amount(300), "01", entity.ExpenseTags{Essential: true}, "groceries", entity.OriginManual),
		entity.NewFinancial(userID, day(3), amount(200), entity.FinancialSubtypeDebtPayment, "loan installment", entity.OriginManual),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 5)

	if !summary.Resume.IncomeTotal.Equal(amount(1000)) {
		t.Errorf("IncomeTotal = %s, want 1000", summary.Resume.IncomeTotal)
	}
	if !summary.Resume.ConsumptionTotal.Equal(amount(300)) {
		t.Errorf("ConsumptionTotal = %s, want 300", summary.Resume.ConsumptionTotal)
	}
	if !summary.Resume.DebtPaymentsTotal.Equal(amount(200)) {
		t.Errorf("DebtPaymentsTotal = %s, want 200", summary.Resume.DebtPaymentsTotal)
	}
	if !summary.Resume.Savings.Equal(amount(700)) {
		t.Errorf("Savings = %s, want 700", summary.Resume.Savings)
	}
	if summary.Resume.SavingsRate != 0.7 {
		t.Errorf("SavingsRate = %v, want 0.7", summary.Resume.SavingsRate)
	}
	if summary.Resume.DTI != 0.2 {
		t.Errorf("DTI = %v, want 0.2", summary.Resume.DTI)
	}
	if summary.Year != 2025 || summary.Month != 3 {
		t.Errorf("rollup key = (%d, %d), want (2025, 3)", summary.Year, summary.Month)
	}
}

func TestBuildSummary_NoIncomeZeroGuards(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewExpense(userID, day(5), amount(50), "02", entity.ExpenseTags{}, "", entity.OriginManual),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 5)

	if !summary.Resume.Savings.Equal(amount(-50)) {
		t.Errorf("Savings = %s, want -50", summary.Resume.Savings)
	}
	if summary.Resume.SavingsRate != 0 {
		t.Errorf("SavingsRate = %v, want 0", summary.Resume.SavingsRate)
	}
	if summary.Resume.DTI != 0 {
		t.Errorf("DTI = %v, want 0", summary.Resume.DTI)
	}

	wantAlerts := map[string]bool{alertNegativeSavings: true, alertNoIncome: true}
	for _, alert := range summary.Alerts {
		if !wantAlerts[alert] {
			t.Errorf("unexpected alert %q", alert)
		}
		delete(wantAlerts, alert)
	}
	for alert := range wantAlerts {
		t.Errorf("missing alert %q", alert)
	}
}

func TestBuildSummary_TransferExclusion(t *testing.T) {
	userID := uuid.New()
	base := []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(1000), "", entity.OriginManual),
		entity.NewExpense(userID, day(2), amount(300), "01", entity.ExpenseTags{}, "", entity.OriginManual),
		entity.NewFinancial(userID, day(3), amount(200), entity.FinancialSubtypeDebtPayment, "", entity.OriginManual),
	}
	withTransfers := append([]*entity.Transaction{}, base...)
	withTransfers = append(withTransfers,
		entity.NewTransfer(userID, day(4), amount(500), true, "between accounts", entity.OriginManual),
		entity.NewTransfer(userID, day(5), amount(900), false, "external transfer", entity.OriginManual),
	)

	plain := BuildSummary(userID, marchRange(), base, 5)
	mixed := BuildSummary(userID, marchRange(), withTransfers, 5)

	if !mixed.Resume.IncomeTotal.Equal(plain.Resume.IncomeTotal) ||
		!mixed.Resume.ConsumptionTotal.Equal(plain.Resume.ConsumptionTotal) ||
		!mixed.Resume.Savings.Equal(plain.Resume.Savings) ||
		mixed.Resume.DTI != plain.Resume.DTI {
		t.Error("transfers changed KPI totals")
	}
	if mixed.Breakdown.Counts.Transfers != 2 {
		t.Errorf("Transfers count = %d, want 2", mixed.Breakdown.Counts.Transfers)
	}
	if mixed.Breakdown.Counts.Total != plain.Breakdown.Counts.Total {
		t.Error("transfers counted as non-excluded movements")
	}
}

func TestBuildSummary_InternalTransferFlagExcludesAnyKind(t *testing.T) {
	userID := uuid.New()
	flagged := entity.NewIncome(userID, day(1), amount(400), "reimbursement", entity.OriginImport)
	flagged.IsInternalTransfer = true

	summary := BuildSummary(userID, marchRange(), []*entity.Transaction{flagged}, 5)

	if !summary.Resume.IncomeTotal.IsZero() {
		t.Errorf("IncomeTotal = %s, want 0", summary.Resume.IncomeTotal)
	}
}

func TestBuildSummary_TagPairsSumToConsumption(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewExpense(userID, day(1), amount(100), "01", entity.ExpenseTags{Essential: true, Fixed: true, Recurring: true}, "", entity.OriginManual),
		entity.NewExpense(userID, day(2), amount(40), "03", entity.ExpenseTags{Essential: true}, "", entity.OriginCSV),
		entity.NewExpense(userID, day(3), amount(60), "09", entity.ExpenseTags{Recurring: true}, "", entity.OriginAPI),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 5)

	consumption := summary.Resume.ConsumptionTotal
	tags := summary.Breakdown.TagTotals
	pairs := []struct {
		name string
		sum  decimal.Decimal
	}{
		{"essential+discretionary", tags.Essential.Add(tags.Discretionary)},
		{"fixed+variable", tags.Fixed.Add(tags.Variable)},
		{"recurring+non_recurring", tags.Recurring.Add(tags.NonRecurring)},
	}
	for _, pair := range pairs {
		if !pair.sum.Equal(consumption) {
			t.Errorf("%s = %s, want %s", pair.name, pair.sum, consumption)
		}
	}
}

func TestBuildSummary_TopCategories(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewExpense(userID, day(1), amount(500), "04", entity.ExpenseTags{}, "", entity.OriginManual),
		entity.NewExpense(userID, day(2), amount(300), "01", entity.ExpenseTags{}, "", entity.OriginManual),
		// 07 and 09 tie; the lower code must rank first
		entity.NewExpense(userID, day(3), amount(100), "09", entity.ExpenseTags{}, "", entity.OriginManual),
		entity.NewExpense(userID, day(4), amount(100), "07", entity.ExpenseTags{}, "", entity.OriginManual),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 2)

	top := summary.Breakdown.TopCategories
	if len(top) != 2 {
		t.Fatalf("len(TopCategories) = %d, want 2", len(top))
	}
	if top[0].CategoryCode != "04" || top[1].CategoryCode != "01" {
		t.Errorf("ranking = [%s, %s], want [04, 01]", top[0].CategoryCode, top[1].CategoryCode)
	}
	if !summary.Breakdown.OthersTotal.Equal(amount(200)) {
		t.Errorf("OthersTotal = %s, want 200", summary.Breakdown.OthersTotal)
	}
	if top[0].Percentage != 0.5 {
		t.Errorf("top percentage = %v, want 0.5", top[0].Percentage)
	}

	// Untruncated ranking resolves the tie by ascending code and its
	// percentages cover all of consumption.
	full := BuildSummary(userID, marchRange(), transactions, 10)
	codes := make([]string, len(full.Breakdown.TopCategories))
	sum := 0.0
	for i, c := range full.Breakdown.TopCategories {
		codes[i] = c.CategoryCode
		sum += c.Percentage
	}
	want := []string{"04", "01", "07", "09"}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("full ranking = %v, want %v", codes, want)
		}
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("percentage sum = %v, want 1", sum)
	}
	if !full.Breakdown.OthersTotal.IsZero() {
		t.Errorf("OthersTotal = %s, want 0", full.Breakdown.OthersTotal)
	}
}

func TestBuildSummary_DaysWithActivityAndOrigins(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(10), "", entity.OriginManual),
		entity.NewExpense(userID, day(1), amount(5), "01", entity.ExpenseTags{}, "", entity.OriginCSV),
		entity.NewExpense(userID, day(7), amount(5), "01", entity.ExpenseTags{}, "", entity.OriginCSV),
		entity.NewTransfer(userID, day(9), amount(100), false, "", entity.OriginManual),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 5)

	// Transfers do not count as activity.
	if summary.Breakdown.Counts.DaysWithActivity != 2 {
		t.Errorf("DaysWithActivity = %d, want 2", summary.Breakdown.Counts.DaysWithActivity)
	}
	if summary.Breakdown.Counts.ByOrigin[entity.OriginCSV] != 2 {
		t.Errorf("ByOrigin[csv] = %d, want 2", summary.Breakdown.Counts.ByOrigin[entity.OriginCSV])
	}
	if summary.Breakdown.Counts.ByOrigin[entity.OriginManual] != 1 {
		t.Errorf("ByOrigin[manual] = %d, want 1", summary.Breakdown.Counts.ByOrigin[entity.OriginManual])
	}
}

func TestBuildSummary_Deterministic(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(1200), "", entity.OriginManual),
		entity.NewExpense(userID, day(2), amount(340), "05", entity.ExpenseTags{Fixed: true}, "", entity.OriginImport),
		entity.NewFinancial(userID, day(8), amount(150), entity.FinancialSubtypeSavingsInvestment, "", entity.OriginManual),
	}

	first := BuildSummary(userID, marchRange(), transactions, 5)
	second := BuildSummary(userID, marchRange(), transactions, 5)

	first.ComputedAt = second.ComputedAt
	if !first.Resume.IncomeTotal.Equal(second.Resume.IncomeTotal) ||
		!first.Resume.InvestmentsTotal.Equal(second.Resume.InvestmentsTotal) ||
		first.Resume.SavingsRate != second.Resume.SavingsRate ||
		len(first.Breakdown.TopCategories) != len(second.Breakdown.TopCategories) {
		t.Error("recomputation over an unchanged ledger produced a different summary")
	}
}

func TestBuildSummary_EmptyLedger(t *testing.T) {
	userID := uuid.New()
	summary := BuildSummary(userID, marchRange(), nil, 5)

	if !summary.Resume.IncomeTotal.IsZero() || !summary.Resume.ConsumptionTotal.IsZero() || !summary.Resume.Savings.IsZero() {
		t.Error("empty ledger must produce an all-zero summary")
	}
	if summary.Resume.SavingsRate != 0 || summary.Resume.DTI != 0 {
		t.Error("ratios must be 0 for an empty ledger")
	}
	if len(summary.Breakdown.TopCategories) != 0 {
		t.Error("empty ledger must produce no category ranking")
	}
	if len(summary.Alerts) != 0 {
		t.Errorf("empty ledger alerts = %v, want none", summary.Alerts)
	}
}

func TestBuildSummary_FinancialSubtypeBuckets(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(1000), "", entity.OriginManual),
		entity.NewFinancial(userID, day(2), amount(100), entity.FinancialSubtypeDebtPayment, "", entity.OriginManual),
		entity.NewFinancial(userID, day(3), amount(200), entity.FinancialSubtypeSavingsInvestment, "", entity.OriginManual),
		entity.NewFinancial(userID, day(4), amount(50), entity.FinancialSubtypeLoanGiven, "", entity.OriginManual),
		entity.NewFinancial(userID, day(5), amount(25), entity.FinancialSubtypeAsset, "", entity.OriginManual),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 5)

	if !summary.Resume.DebtPaymentsTotal.Equal(amount(100)) {
		t.Errorf("DebtPaymentsTotal = %s, want 100", summary.Resume.DebtPaymentsTotal)
	}
	if !summary.Resume.InvestmentsTotal.Equal(amount(200)) {
		t.Errorf("InvestmentsTotal = %s, want 200", summary.Resume.InvestmentsTotal)
	}
	if !summary.Resume.OtherFinancialTotal.Equal(amount(75)) {
		t.Errorf("OtherFinancialTotal = %s, want 75", summary.Resume.OtherFinancialTotal)
	}
	// Financial movements never participate in savings.
	if !summary.Resume.Savings.Equal(amount(1000)) {
		t.Errorf("Savings = %s, want 1000", summary.Resume.Savings)
	}
}

func TestBuildSummary_HighDTIAlert(t *testing.T) {
	userID := uuid.New()
	transactions := []*entity.Transaction{
		entity.NewIncome(userID, day(1), amount(1000), "", entity.OriginManual),
		entity.NewFinancial(userID, day(2), amount(500), entity.FinancialSubtypeDebtPayment, "", entity.OriginManual),
	}

	summary := BuildSummary(userID, marchRange(), transactions, 5)

	found := false
	for _, alert := range summary.Alerts {
		if alert == alertHighDTI {
			found = true
		}
	}
	if !found {
		t.Errorf("alerts = %v, want high DTI alert", summary.Alerts)
	}
}

func TestBuildSummary_CustomRangeHasNoRollupKey(t *testing.T) {
	userID := uuid.New()
	rng := entity.PeriodRange{From: day(10), To: day(20)}

	summary := BuildSummary(userID, rng, nil, 5)

	if summary.Year != 0 || summary.Month != 0 {
		t.Errorf("custom range key = (%d, %d), want (0, 0)", summary.Year, summary.Month)
	}
}

func TestParseRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		rng, err := ParseRange("2025-03-01", "2025-04-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rng.From.Equal(day(1)) {
			t.Errorf("From = %v, want %v", rng.From, day(1))
		}
	})

	t.Run("missing from", func(t *testing.T) {
		if _, err := ParseRange("", "2025-04-01"); err == nil {
			t.Error("expected error for missing from")
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		if _, err := ParseRange("2025-04-01", "2025-03-01"); err == nil {
			t.Error("expected error for inverted range")
		}
	})

	t.Run("equal bounds", func(t *testing.T) {
		if _, err := ParseRange("2025-03-01", "2025-03-01"); err == nil {
			t.Error("expected error for from == to")
		}
	})

	t.Run("bad format", func(t *testing.T) {
		if _, err := ParseRange("01/03/2025", "2025-04-01"); err == nil {
			t.Error("expected error for bad date format")
		}
	})
}
