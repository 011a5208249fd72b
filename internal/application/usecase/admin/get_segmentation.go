package admin

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

// GetSegmentationInput is the analysis window.
type GetSegmentationInput struct {
	Range entity.PeriodRange
}

// GetSegmentationOutput groups users by income tier, with the per-user
// rows kept for audit.
type GetSegmentationOutput struct {
	Groups  []entity.SegmentationGroup
	Details []entity.SegmentationDetail
}

// GetSegmentationUseCase segments users into income tiers and reports
// each tier's mean savings rate. The income reference prefers the
// declared profile income; a user without one falls back to the income
// observed in the window, flagged as such. A user with neither lands
// in the unknown tier with no savings rate.
type GetSegmentationUseCase struct {
	userRepository        adapter.UserRepository
	transactionRepository adapter.TransactionRepository
	lowThreshold          decimal.Decimal
	highThreshold         decimal.Decimal
	scanTimeout           time.Duration
	workers               int
}

// NewGetSegmentationUseCase creates a new GetSegmentationUseCase.
func NewGetSegmentationUseCase(userRepository adapter.UserRepository, transactionRepository adapter.TransactionRepository, lowThreshold, highThreshold decimal.Decimal, scanTimeout time.Duration, workers int) *GetSegmentationUseCase {
	return &GetSegmentationUseCase{
		userRepository:        userRepository,
		transactionRepository: transactionRepository,
		lowThreshold:          lowThreshold,
		highThreshold:         highThreshold,
		scanTimeout:           scanTimeout,
		workers:               workers,
	}
}

// Execute runs the segmentation scan under the configured time budget.
func (uc *GetSegmentationUseCase) Execute(ctx context.Context, input GetSegmentationInput) (*GetSegmentationOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.scanTimeout)
	defer cancel()

	users, ledger, err := loadScanData(ctx, uc.userRepository, uc.transactionRepository, input.Range)
	if err != nil {
		return nil, err
	}

	details := make([]entity.SegmentationDetail, len(users))
	err = forEachUser(ctx, users, uc.workers, func(i int, user *entity.User) {
		details[i] = uc.segmentUser(user, ledger[user.ID])
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].UserID.String() < details[j].UserID.String()
	})

	return &GetSegmentationOutput{
		Groups:  groupByTier(details),
		Details: details,
	}, nil
}

// segmentUser derives one user's audit row from their window ledger.
func (uc *GetSegmentationUseCase) segmentUser(user *entity.User, transactions []*entity.Transaction) entity.SegmentationDetail {
	c := analytics.Classify(transactions)
	savings := c.IncomeTotal.Sub(c.ConsumptionTotal)

	detail := entity.SegmentationDetail{
		UserID:            user.ID,
		PeriodIncome:      c.IncomeTotal,
		PeriodConsumption: c.ConsumptionTotal,
		PeriodSavings:     savings,
		IncomeReference:   decimal.Zero,
		ReferenceSource:   entity.ReferenceNone,
		IncomeTier:        entity.TierUnknown,
	}

	switch {
	case user.ProfileIncome != nil && user.ProfileIncome.IsPositive():
		detail.IncomeReference = *user.ProfileIncome
		detail.ReferenceSource = entity.ReferenceProfile
	case c.IncomeTotal.IsPositive():
		detail.IncomeReference = c.IncomeTotal
		detail.ReferenceSource = entity.ReferenceObserved
	default:
		return detail
	}

	detail.IncomeTier = uc.tierOf(detail.IncomeReference)
	rate := savings.Div(detail.IncomeReference).InexactFloat64()
	detail.SavingsRate = &rate

	return detail
}

// tierOf places a positive income reference on the configured scale:
// below the low threshold is low, below the high threshold is medium,
// the rest is high.
func (uc *GetSegmentationUseCase) tierOf(reference decimal.Decimal) entity.IncomeTier {
	switch {
	case reference.LessThan(uc.lowThreshold):
		return entity.TierLow
	case reference.LessThan(uc.highThreshold):
		return entity.TierMedium
	default:
		return entity.TierHigh
	}
}

// groupByTier reduces the audit rows into the tier report, ordered
// low, medium, high, unknown. The mean savings rate skips members
// without a computable rate.
func groupByTier(details []entity.SegmentationDetail) []entity.SegmentationGroup {
	order := []entity.IncomeTier{entity.TierLow, entity.TierMedium, entity.TierHigh, entity.TierUnknown}

	counts := make(map[entity.IncomeTier]int)
	rateSums := make(map[entity.IncomeTier]float64)
	rateCounts := make(map[entity.IncomeTier]int)

	for _, d := range details {
		counts[d.IncomeTier]++
		if d.SavingsRate != nil {
			rateSums[d.IncomeTier] += *d.SavingsRate
			rateCounts[d.IncomeTier]++
		}
	}

	groups := make([]entity.SegmentationGroup, 0, len(order))
	for _, tier := range order {
		group := entity.SegmentationGroup{IncomeTier: tier, UserCount: counts[tier]}
		if rateCounts[tier] > 0 {
			group.MeanSavingsRate = rateSums[tier] / float64(rateCounts[tier])
		}
		groups = append(groups, group)
	}
	return groups
}
