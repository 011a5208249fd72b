package dto

import (
	"github.com/finlit-cms/backend/internal/application/usecase/admin"
)

// CohortsResponse represents the registration cohort report.
type CohortsResponse struct {
	Cohorts []CohortResponse     `json:"cohorts"`
	Totals  CohortTotalsResponse `json:"totals"`
}

// CohortResponse represents one registration-month cohort.
type CohortResponse struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	UserCount    int     `json:"user_count"`
	ActiveCount  int     `json:"active_count"`
	ActivityRate float64 `json:"activity_rate"`
}

// CohortTotalsResponse represents the totals row.
type CohortTotalsResponse struct {
	UserCount   int `json:"user_count"`
	ActiveCount int `json:"active_count"`
}

// ToCohortsResponse converts a GetCohortsOutput to its DTO.
func ToCohortsResponse(output *admin.GetCohortsOutput) CohortsResponse {
	cohorts := make([]CohortResponse, len(output.Cohorts))
	for i, c := range output.Cohorts {
		cohorts[i] = CohortResponse{
			Year:         c.Year,
			Month:        c.Month,
			UserCount:    c.UserCount,
			ActiveCount:  c.ActiveCount,
			ActivityRate: c.ActivityRate,
		}
	}
	return CohortsResponse{
		Cohorts: cohorts,
		Totals: CohortTotalsResponse{
			UserCount:   output.Totals.UserCount,
			ActiveCount: output.Totals.ActiveCount,
		},
	}
}

// SegmentationResponse represents the income-tier segmentation report.
type SegmentationResponse struct {
	Groups  []SegmentationGroupResponse  `json:"groups"`
	Details []SegmentationDetailResponse `json:"details"`
}

// SegmentationGroupResponse represents one income tier.
type SegmentationGroupResponse struct {
	IncomeTier      string  `json:"income_tier"`
	UserCount       int     `json:"user_count"`
	MeanSavingsRate float64 `json:"mean_savings_rate"`
}

// SegmentationDetailResponse represents one user's audit row.
type SegmentationDetailResponse struct {
	UserID            string   `json:"user_id"`
	PeriodIncome      float64  `json:"period_income"`
	PeriodConsumption float64  `json:"period_consumption"`
	PeriodSavings     float64  `json:"period_savings"`
	IncomeReference   float64  `json:"income_reference"`
	ReferenceSource   string   `json:"reference_source"`
	SavingsRate       *float64 `json:"savings_rate"`
	IncomeTier        string   `json:"income_tier"`
}

// ToSegmentationResponse converts a GetSegmentationOutput to its DTO.
func ToSegmentationResponse(output *admin.GetSegmentationOutput) SegmentationResponse {
	groups := make([]SegmentationGroupResponse, len(output.Groups))
	for i, g := range output.Groups {
		groups[i] = SegmentationGroupResponse{
			IncomeTier:      string(g.IncomeTier),
			UserCount:       g.UserCount,
			MeanSavingsRate: g.MeanSavingsRate,
		}
	}

	details := make([]SegmentationDetailResponse, len(output.Details))
	for i, d := range output.Details {
		details[i] = SegmentationDetailResponse{
			UserID:            d.UserID.String(),
			PeriodIncome:      toFloat(d.PeriodIncome),
			PeriodConsumption: toFloat(d.PeriodConsumption),
			PeriodSavings:     toFloat(d.PeriodSavings),
			IncomeReference:   toFloat(d.IncomeReference),
			ReferenceSource:   string(d.ReferenceSource),
			SavingsRate:       d.SavingsRate,
			IncomeTier:        string(d.IncomeTier),
		}
	}

	return SegmentationResponse{Groups: groups, Details: details}
}
