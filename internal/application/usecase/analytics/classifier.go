// Package analytics contains the period analytics use cases: KPI
// aggregation, composition, series, streaks, variation and rollups.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// Classification is the result of partitioning a set of transactions
// into their disjoint KPI roles. All totals exclude transfers and
// movements flagged as internal transfers.
type Classification struct {
	IncomeTotal         decimal.Decimal
	ConsumptionTotal    decimal.Decimal
	DebtPaymentsTotal   decimal.Decimal
	InvestmentsTotal    decimal.Decimal
	OtherFinancialTotal decimal.Decimal

	// CategoryTotals buckets consumption by category code.
	CategoryTotals map[string]decimal.Decimal

	TagTotals entity.TagTotals
	Counts    entity.MovementCounts
}

// Classify partitions transactions into the KPI buckets. It is a pure
// function: same input, same output, no hidden state. Rules, in order:
//
//  1. transfers and internal transfers are excluded from every total;
//  2. income contributes to IncomeTotal;
//  3. expenses contribute to ConsumptionTotal, their category bucket
//     and each tag dimension;
//  4. financial movements split by subtype into debt payments,
//     investments and other-financial.
//
// Conditional-field integrity (an expense without a category, a
// financial movement without a subtype) is enforced at ingestion, so
// the classifier never needs to drop or repair records.
func Classify(transactions []*entity.Transaction) Classification {
	c := Classification{
		IncomeTotal:         decimal.Zero,
		ConsumptionTotal:    decimal.Zero,
		DebtPaymentsTotal:   decimal.Zero,
		InvestmentsTotal:    decimal.Zero,
		OtherFinancialTotal: decimal.Zero,
		CategoryTotals:      make(map[string]decimal.Decimal),
		TagTotals: entity.TagTotals{
			Essential:     decimal.Zero,
			Discretionary: decimal.Zero,
			Fixed:         decimal.Zero,
			Variable:      decimal.Zero,
			Recurring:     decimal.Zero,
			NonRecurring:  decimal.Zero,
		},
	}
	c.Counts.ByOrigin = make(map[entity.TransactionOrigin]int)

	activeDays := make(map[string]struct{})

	for _, tx := range transactions {
		if tx.Excluded() {
			c.Counts.Transfers++
			continue
		}

		c.Counts.Total++
		c.Counts.ByOrigin[tx.Origin]++
		activeDays[tx.OccurredAt.Format("2006-01-02")] = struct{}{}

		switch tx.Kind {
		case entity.MovementKindIncome:
			c.Counts.Incomes++
			c.IncomeTotal = c.IncomeTotal.Add(tx.Amount)

		case entity.MovementKindExpense:
			c.Counts.Expenses++
			c.ConsumptionTotal = c.ConsumptionTotal.Add(tx.Amount)
			c.CategoryTotals[tx.CategoryCode] = c.CategoryTotals[tx.CategoryCode].Add(tx.Amount)
			c.addTagTotals(tx)

		case entity.MovementKindFinancial:
			c.Counts.Financials++
			switch tx.FinancialSubtype {
			case entity.FinancialSubtypeDebtPayment:
				c.DebtPaymentsTotal = c.DebtPaymentsTotal.Add(tx.Amount)
			case entity.FinancialSubtypeSavingsInvestment:
				c.InvestmentsTotal = c.InvestmentsTotal.Add(tx.Amount)
			default:
				c.OtherFinancialTotal = c.OtherFinancialTotal.Add(tx.Amount)
			}
		}
	}

	c.Counts.DaysWithActivity = len(activeDays)

	return c
}

// addTagTotals buckets an expense into the three complementary tag
// pairs. Every expense lands on exactly one side of each pair, so each
// pair sums to ConsumptionTotal.
func (c *Classification) addTagTotals(tx *entity.Transaction) {
	if tx.Tags.Essential {
		c.TagTotals.Essential = c.TagTotals.Essential.Add(tx.Amount)
	} else {
		c.TagTotals.Discretionary = c.TagTotals.Discretionary.Add(tx.Amount)
	}
	if tx.Tags.Fixed {
		c.TagTotals.Fixed = c.TagTotals.Fixed.Add(tx.Amount)
	} else {
		c.TagTotals.Variable = c.TagTotals.Variable.Add(tx.Amount)
	}
	if tx.Tags.Recurring {
		c.TagTotals.Recurring = c.TagTotals.Recurring.Add(tx.Amount)
	} else {
		c.TagTotals.NonRecurring = c.TagTotals.NonRecurring.Add(tx.Amount)
	}
}

// HasActivity reports whether at least one non-excluded movement was
// classified. Used by the cohort engine's activity test.
func (c *Classification) HasActivity() bool {
	return c.Counts.Total > 0
}
