package dto

import (
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

// PeriodSummaryResponse represents the full KPI bundle for a period.
type PeriodSummaryResponse struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`

	From       string `json:"from"`
	To         string `json:"to"`
	ComputedAt string `json:"computed_at"`

	Resume    ResumeResponse    `json:"resume"`
	Breakdown BreakdownResponse `json:"breakdown"`
	Alerts    []string          `json:"alerts"`
}

// ResumeResponse represents the headline KPI figures.
type ResumeResponse struct {
	IncomeTotal         float64 `json:"income_total"`
	ConsumptionTotal    float64 `json:"consumption_total"`
	OtherFinancialTotal float64 `json:"other_financial_total"`
	DebtPaymentsTotal   float64 `json:"debt_payments_total"`
	InvestmentsTotal    float64 `json:"investments_total"`
	Savings             float64 `json:"savings"`
	SavingsRate         float64 `json:"savings_rate"`
	DTI                 float64 `json:"dti"`
}

// BreakdownResponse represents the composition behind the resume.
type BreakdownResponse struct {
	TopCategories []CategoryTotalResponse `json:"top_categories"`
	OthersTotal   float64                 `json:"others_total"`
	TagTotals     TagTotalsResponse       `json:"tag_totals"`
	Counts        CountsResponse          `json:"counts"`
}

// CategoryTotalResponse represents one ranked consumption category.
type CategoryTotalResponse struct {
	CategoryCode string  `json:"category_code"`
	Total        float64 `json:"total"`
	Percentage   float64 `json:"percentage"`
}

// TagTotalsResponse represents the tag dimension totals.
type TagTotalsResponse struct {
	Essential     float64 `json:"essential"`
	Discretionary float64 `json:"discretionary"`
	Fixed         float64 `json:"fixed"`
	Variable      float64 `json:"variable"`
	Recurring     float64 `json:"recurring"`
	NonRecurring  float64 `json:"non_recurring"`
}

// CountsResponse represents the movement counts for a period.
type CountsResponse struct {
	Total            int            `json:"total"`
	Incomes          int            `json:"incomes"`
	Expenses         int            `json:"expenses"`
	Transfers        int            `json:"transfers"`
	Financials       int            `json:"financials"`
	DaysWithActivity int            `json:"days_with_activity"`
	ByOrigin         map[string]int `json:"by_origin"`
}

// ToPeriodSummaryResponse converts a domain PeriodSummary to its DTO.
func ToPeriodSummaryResponse(summary *entity.PeriodSummary) PeriodSummaryResponse {
	topCategories := make([]CategoryTotalResponse, len(summary.Breakdown.TopCategories))
	for i, c := range summary.Breakdown.TopCategories {
		topCategories[i] = CategoryTotalResponse{
			CategoryCode: c.CategoryCode,
			Total:        toFloat(c.Total),
			Percentage:   c.Percentage,
		}
	}

	byOrigin := make(map[string]int, len(summary.Breakdown.Counts.ByOrigin))
	for origin, n := range summary.Breakdown.Counts.ByOrigin {
		byOrigin[string(origin)] = n
	}

	alerts := summary.Alerts
	if alerts == nil {
		alerts = []string{}
	}

	return PeriodSummaryResponse{
		UserID:     summary.UserID.String(),
		Year:       summary.Year,
		Month:      summary.Month,
		From:       summary.Range.From.Format("2006-01-02"),
		To:         summary.Range.To.Format("2006-01-02"),
		ComputedAt: summary.ComputedAt.Format("2006-01-02T15:04:05Z07:00"),
		Resume: ResumeResponse{
			IncomeTotal:         toFloat(summary.Resume.IncomeTotal),
			ConsumptionTotal:    toFloat(summary.Resume.ConsumptionTotal),
			OtherFinancialTotal: toFloat(summary.Resume.OtherFinancialTotal),
			DebtPaymentsTotal:   toFloat(summary.Resume.DebtPaymentsTotal),
			InvestmentsTotal:    toFloat(summary.Resume.InvestmentsTotal),
			Savings:             toFloat(summary.Resume.Savings),
			SavingsRate:         summary.Resume.SavingsRate,
			DTI:                 summary.Resume.DTI,
		},
		Breakdown: BreakdownResponse{
			TopCategories: topCategories,
			OthersTotal:   toFloat(summary.Breakdown.OthersTotal),
			TagTotals: TagTotalsResponse{
				Essential:     toFloat(summary.Breakdown.TagTotals.Essential),
				Discretionary: toFloat(summary.Breakdown.TagTotals.Discretionary),
				Fixed:         toFloat(summary.Breakdown.TagTotals.Fixed),
				Variable:      toFloat(summary.Breakdown.TagTotals.Variable),
				Recurring:     toFloat(summary.Breakdown.TagTotals.Recurring),
				NonRecurring:  toFloat(summary.Breakdown.TagTotals.NonRecurring),
			},
			Counts: CountsResponse{
				Total:            summary.Breakdown.Counts.Total,
				Incomes:          summary.Breakdown.Counts.Incomes,
				Expenses:         summary.Breakdown.Counts.Expenses,
				Transfers:        summary.Breakdown.Counts.Transfers,
				Financials:       summary.Breakdown.Counts.Financials,
				DaysWithActivity: summary.Breakdown.Counts.DaysWithActivity,
				ByOrigin:         byOrigin,
			},
		},
		Alerts: alerts,
	}
}

// MonthlySeriesResponse represents the per-month series response.
type MonthlySeriesResponse struct {
	Points []MonthlyPointResponse `json:"points"`
}

// MonthlyPointResponse represents one month in the series.
type MonthlyPointResponse struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	IncomeTotal      float64 `json:"income_total"`
	ConsumptionTotal float64 `json:"consumption_total"`
	Savings          float64 `json:"savings"`
}

// ToMonthlySeriesResponse converts a GetMonthlySeriesOutput to its DTO.
func ToMonthlySeriesResponse(output *analytics.GetMonthlySeriesOutput) MonthlySeriesResponse {
	points := make([]MonthlyPointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = MonthlyPointResponse{
			Year:             p.Year,
			Month:            p.Month,
			IncomeTotal:      toFloat(p.IncomeTotal),
			ConsumptionTotal: toFloat(p.ConsumptionTotal),
			Savings:          toFloat(p.Savings),
		}
	}
	return MonthlySeriesResponse{Points: points}
}

// CompositionResponse represents the consumption composition response.
type CompositionResponse struct {
	ConsumptionTotal float64                 `json:"consumption_total"`
	Items            []CategoryTotalResponse `json:"items"`
	OthersTotal      float64                 `json:"others_total"`
}

// ToCompositionResponse converts a GetCompositionOutput to its DTO.
func ToCompositionResponse(output *analytics.GetCompositionOutput) CompositionResponse {
	items := make([]CategoryTotalResponse, len(output.Items))
	for i, c := range output.Items {
		items[i] = CategoryTotalResponse{
			CategoryCode: c.CategoryCode,
			Total:        toFloat(c.Total),
			Percentage:   c.Percentage,
		}
	}
	return CompositionResponse{
		ConsumptionTotal: toFloat(output.ConsumptionTotal),
		Items:            items,
		OthersTotal:      toFloat(output.OthersTotal),
	}
}

// StreakResponse represents the activity streak response.
type StreakResponse struct {
	MaxStreakDays int `json:"max_streak_days"`
}

// DTIResponse represents the debt-to-income response.
type DTIResponse struct {
	DTI               float64 `json:"dti"`
	DebtPaymentsTotal float64 `json:"debt_payments_total"`
	IncomeTotal       float64 `json:"income_total"`
}

// VariationResponse represents the month-over-month variation response.
type VariationResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Income      VariationMetricResponse `json:"income"`
	Consumption VariationMetricResponse `json:"consumption"`
	Savings     VariationMetricResponse `json:"savings"`

	Trend string `json:"trend"`

	Budget *BudgetComparisonResponse `json:"budget,omitempty"`
}

// VariationMetricResponse represents one figure's movement.
type VariationMetricResponse struct {
	Current   float64  `json:"current"`
	Previous  float64  `json:"previous"`
	Delta     float64  `json:"delta"`
	PctChange *float64 `json:"pct_change"`
}

// BudgetComparisonResponse represents the consumption-vs-budget block.
type BudgetComparisonResponse struct {
	Budget           float64  `json:"budget"`
	ConsumptionDelta float64  `json:"consumption_delta"`
	PctOfBudget      *float64 `json:"pct_of_budget"`
}

// ToVariationResponse converts a GetMonthlyVariationOutput to its DTO.
func ToVariationResponse(output *analytics.GetMonthlyVariationOutput) VariationResponse {
	response := VariationResponse{
		Year:        output.Year,
		Month:       output.Month,
		Income:      toVariationMetricResponse(output.Income),
		Consumption: toVariationMetricResponse(output.Consumption),
		Savings:     toVariationMetricResponse(output.Savings),
		Trend:       output.Trend,
	}
	if output.Budget != nil {
		response.Budget = &BudgetComparisonResponse{
			Budget:           toFloat(output.Budget.Budget),
			ConsumptionDelta: toFloat(output.Budget.ConsumptionDelta),
			PctOfBudget:      output.Budget.PctOfBudget,
		}
	}
	return response
}

func toVariationMetricResponse(m analytics.VariationMetric) VariationMetricResponse {
	return VariationMetricResponse{
		Current:   toFloat(m.Current),
		Previous:  toFloat(m.Previous),
		Delta:     toFloat(m.Delta),
		PctChange: m.PctChange,
	}
}
