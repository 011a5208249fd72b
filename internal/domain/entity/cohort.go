package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeTier is the coarse income bucket used for segmentation.
type IncomeTier string

const (
	TierLow     IncomeTier = "low"
	TierMedium  IncomeTier = "medium"
	TierHigh    IncomeTier = "high"
	TierUnknown IncomeTier = "unknown"
)

// IncomeReferenceSource flags where a user's income reference came
// from, so downstream consumers can distinguish declared from
// estimated values.
type IncomeReferenceSource string

const (
	ReferenceProfile  IncomeReferenceSource = "profile"
	ReferenceObserved IncomeReferenceSource = "observed"
	ReferenceNone     IncomeReferenceSource = "none"
)

// CohortRecord aggregates the users registered in one calendar month
// and how many of them were active in the analysis window.
type CohortRecord struct {
	Year      int
	Month     int
	UserCount int
	// ActiveCount is the number of cohort members with at least one
	// non-excluded transaction in the window.
	ActiveCount int
	// ActivityRate is ActiveCount/UserCount, 0 for an empty cohort.
	ActivityRate float64
}

// CohortTotals sums a cohort report across all cohorts.
type CohortTotals struct {
	UserCount   int
	ActiveCount int
}

// SegmentationGroup is one income tier with its population and the
// mean savings rate of members that have a computable rate.
type SegmentationGroup struct {
	IncomeTier IncomeTier
	UserCount  int
	// MeanSavingsRate averages only the members with a non-nil savings
	// rate; a tier where no member has one reports 0.
	MeanSavingsRate float64
}

// SegmentationDetail is the per-user audit row behind a segmentation
// report.
type SegmentationDetail struct {
	UserID            uuid.UUID
	PeriodIncome      decimal.Decimal
	PeriodConsumption decimal.Decimal
	PeriodSavings     decimal.Decimal
	IncomeReference   decimal.Decimal
	ReferenceSource   IncomeReferenceSource
	// SavingsRate is nil when the user has no income reference at all.
	SavingsRate *float64
	IncomeTier  IncomeTier
}
