package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodRange is the half-open date range [From, To) a summary covers.
type PeriodRange struct {
	From time.Time
	To   time.Time
}

// PeriodResume holds the headline KPI totals and ratios for a period.
type PeriodResume struct {
	IncomeTotal         decimal.Decimal
	ConsumptionTotal    decimal.Decimal
	OtherFinancialTotal decimal.Decimal
	DebtPaymentsTotal   decimal.Decimal
	InvestmentsTotal    decimal.Decimal

	// Savings is income minus consumption. Financial movements never
	// participate in this difference.
	Savings decimal.Decimal

	// SavingsRate and DTI are 0 when the period has no income.
	SavingsRate float64
	DTI         float64
}

// CategoryTotal is one consumption category's share of the period.
type CategoryTotal struct {
	CategoryCode string
	Total        decimal.Decimal
	// Percentage of ConsumptionTotal, in [0, 1]; 0 when consumption is 0.
	Percentage float64
}

// TagTotals sums consumption expenses along the three tag dimensions.
// Each complementary pair sums exactly to ConsumptionTotal.
type TagTotals struct {
	Essential     decimal.Decimal
	Discretionary decimal.Decimal
	Fixed         decimal.Decimal
	Variable      decimal.Decimal
	Recurring     decimal.Decimal
	NonRecurring  decimal.Decimal
}

// MovementCounts tallies non-excluded movements by kind and origin.
// Transfers counts the excluded movements seen in range, for audit.
type MovementCounts struct {
	Total      int
	Incomes    int
	Expenses   int
	Transfers  int
	Financials int

	// DaysWithActivity is the number of distinct calendar dates (in the
	// transaction's local date) with at least one non-excluded movement.
	DaysWithActivity int

	ByOrigin map[TransactionOrigin]int
}

// PeriodBreakdown details the composition behind the resume figures.
type PeriodBreakdown struct {
	TopCategories []CategoryTotal
	// OthersTotal aggregates the consumption not covered by TopCategories.
	OthersTotal decimal.Decimal
	TagTotals   TagTotals
	Counts      MovementCounts
}

// PeriodSummary is the derived KPI bundle for one user and date range.
// It is a pure function of the ledger in range: recomputing over an
// unchanged ledger yields an identical value. Stored rollups are keyed
// uniquely by (UserID, Year, Month).
type PeriodSummary struct {
	UserID uuid.UUID
	Year   int
	Month  int

	Range      PeriodRange
	ComputedAt time.Time

	Resume    PeriodResume
	Breakdown PeriodBreakdown
	Alerts    []string
}

// MonthlyPoint is one calendar month in a per-user series.
type MonthlyPoint struct {
	Year             int
	Month            int
	IncomeTotal      decimal.Decimal
	ConsumptionTotal decimal.Decimal
	Savings          decimal.Decimal
}
