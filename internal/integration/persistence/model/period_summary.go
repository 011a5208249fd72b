package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// PeriodSummaryModel represents the period_summaries rollup table,
// keyed uniquely by (user_id, year, month). The headline figures are
// typed columns so they stay queryable; the breakdown detail is stored
// as JSON documents.
type PeriodSummaryModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_period_summaries_key"`
	Year   int       `gorm:"not null;uniqueIndex:idx_period_summaries_key"`
	Month  int       `gorm:"not null;uniqueIndex:idx_period_summaries_key"`

	RangeFrom  time.Time `gorm:"type:timestamp;not null"`
	RangeTo    time.Time `gorm:"type:timestamp;not null"`
	ComputedAt time.Time `gorm:"type:timestamp;not null"`

	IncomeTotal         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ConsumptionTotal    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OtherFinancialTotal decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DebtPaymentsTotal   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InvestmentsTotal    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Savings             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SavingsRate         float64         `gorm:"not null"`
	DTI                 float64         `gorm:"not null"`

	TopCategories string `gorm:"type:text;not null"`
	TagTotals     string `gorm:"type:text;not null"`
	Counts        string `gorm:"type:text;not null"`

	Alerts pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the PeriodSummaryModel.
func (PeriodSummaryModel) TableName() string {
	return "period_summaries"
}

// categoryTotalDoc is the JSON shape of one ranked category.
type categoryTotalDoc struct {
	CategoryCode string          `json:"category_code"`
	Total        decimal.Decimal `json:"total"`
	Percentage   float64         `json:"percentage"`
}

type topCategoriesDoc struct {
	Items       []categoryTotalDoc `json:"items"`
	OthersTotal decimal.Decimal    `json:"others_total"`
}

type tagTotalsDoc struct {
	Essential     decimal.Decimal `json:"essential"`
	Discretionary decimal.Decimal `json:"discretionary"`
	Fixed         decimal.Decimal `json:"fixed"`
	Variable      decimal.Decimal `json:"variable"`
	Recurring     decimal.Decimal `json:"recurring"`
	NonRecurring  decimal.Decimal `json:"non_recurring"`
}

type countsDoc struct {
	Total            int            `json:"total"`
	Incomes          int            `json:"incomes"`
	Expenses         int            `json:"expenses"`
	Transfers        int            `json:"transfers"`
	Financials       int            `json:"financials"`
	DaysWithActivity int            `json:"days_with_activity"`
	ByOrigin         map[string]int `json:"by_origin"`
}

// ToEntity converts a PeriodSummaryModel to a domain PeriodSummary.
func (m *PeriodSummaryModel) ToEntity() (*entity.PeriodSummary, error) {
	var top topCategoriesDoc
	if err := json.Unmarshal([]byte(m.TopCategories), &top); err != nil {
		return nil, err
	}
	var tags tagTotalsDoc
	if err := json.Unmarshal([]byte(m.TagTotals), &tags); err != nil {
		return nil, err
	}
	var counts countsDoc
	if err := json.Unmarshal([]byte(m.Counts), &counts); err != nil {
		return nil, err
	}

	topCategories := make([]entity.CategoryTotal, 0, len(top.Items))
	for _, item := range top.Items {
		topCategories = append(topCategories, entity.CategoryTotal{
			CategoryCode: item.CategoryCode,
			Total:        item.Total,
			Percentage:   item.Percentage,
		})
	}

	byOrigin := make(map[entity.TransactionOrigin]int, len(counts.ByOrigin))
	for origin, n := range counts.ByOrigin {
		byOrigin[entity.TransactionOrigin(origin)] = n
	}

	return &entity.PeriodSummary{
		UserID:     m.UserID,
		Year:       m.Year,
		Month:      m.Month,
		Range:      entity.PeriodRange{From: m.RangeFrom, To: m.RangeTo},
		ComputedAt: m.ComputedAt,
		Resume: entity.PeriodResume{
			IncomeTotal:         m.IncomeTotal,
			ConsumptionTotal:    m.ConsumptionTotal,
			OtherFinancialTotal: m.OtherFinancialTotal,
			DebtPaymentsTotal:   m.DebtPaymentsTotal,
			InvestmentsTotal:    m.InvestmentsTotal,
			Savings:             m.Savings,
			SavingsRate:         m.SavingsRate,
			DTI:                 m.DTI,
		},
		Breakdown: entity.PeriodBreakdown{
			TopCategories: topCategories,
			OthersTotal:   top.OthersTotal,
			TagTotals: entity.TagTotals{
				Essential:     tags.Essential,
				Discretionary: tags.Discretionary,
				Fixed:         tags.Fixed,
				Variable:      tags.Variable,
				Recurring:     tags.Recurring,
				NonRecurring:  tags.NonRecurring,
			},
			Counts: entity.MovementCounts{
				Total:            counts.Total,
				Incomes:          counts.Incomes,
				Expenses:         counts.Expenses,
				Transfers:        counts.Transfers,
				Financials:       counts.Financials,
				DaysWithActivity: counts.DaysWithActivity,
				ByOrigin:         byOrigin,
			},
		},
		Alerts: []string(m.Alerts),
	}, nil
}

// PeriodSummaryFromEntity creates a PeriodSummaryModel from a domain
// PeriodSummary.
func PeriodSummaryFromEntity(summary *entity.PeriodSummary) (*PeriodSummaryModel, error) {
	items := make([]categoryTotalDoc, 0, len(summary.Breakdown.TopCategories))
	for _, c := range summary.Breakdown.TopCategories {
		items = append(items, categoryTotalDoc{
			CategoryCode: c.CategoryCode,
			Total:        c.Total,
			Percentage:   c.Percentage,
		})
	}
	top, err := json.Marshal(topCategoriesDoc{Items: items, OthersTotal: summary.Breakdown.OthersTotal})
	if err != nil {
		return nil, err
	}

	tags, err := json.Marshal(tagTotalsDoc{
		Essential:     summary.Breakdown.TagTotals.Essential,
		Discretionary: summary.Breakdown.TagTotals.Discretionary,
		Fixed:         summary.Breakdown.TagTotals.Fixed,
		Variable:      summary.Breakdown.TagTotals.Variable,
		Recurring:     summary.Breakdown.TagTotals.Recurring,
		NonRecurring:  summary.Breakdown.TagTotals.NonRecurring,
	})
	if err != nil {
		return nil, err
	}

	byOrigin := make(map[string]int, len(summary.Breakdown.Counts.ByOrigin))
	for origin, n := range summary.Breakdown.Counts.ByOrigin {
		byOrigin[string(origin)] = n
	}
	counts, err := json.Marshal(countsDoc{
		Total:            summary.Breakdown.Counts.Total,
		Incomes:          summary.Breakdown.Counts.Incomes,
		Expenses:         summary.Breakdown.Counts.Expenses,
		Transfers:        summary.Breakdown.Counts.Transfers,
		Financials:       summary.Breakdown.Counts.Financials,
		DaysWithActivity: summary.Breakdown.Counts.DaysWithActivity,
		ByOrigin:         byOrigin,
	})
	if err != nil {
		return nil, err
	}

	return &PeriodSummaryModel{
		ID:                  uuid.New(),
		UserID:              summary.UserID,
		Year:                summary.Year,
		Month:               summary.Month,
		RangeFrom:           summary.Range.From,
		RangeTo:             summary.Range.To,
		ComputedAt:          summary.ComputedAt,
		IncomeTotal:         summary.Resume.IncomeTotal,
		ConsumptionTotal:    summary.Resume.ConsumptionTotal,
		OtherFinancialTotal: summary.Resume.OtherFinancialTotal,
		DebtPaymentsTotal:   summary.Resume.DebtPaymentsTotal,
		InvestmentsTotal:    summary.Resume.InvestmentsTotal,
		Savings:             summary.Resume.Savings,
		SavingsRate:         summary.Resume.SavingsRate,
		DTI:                 summary.Resume.DTI,
		TopCategories:       string(top),
		TagTotals:           string(tags),
		Counts:              string(counts),
		Alerts:              pq.StringArray(summary.Alerts),
	}, nil
}
