// Package admin contains the cross-user analytics scans exposed to
// operators: registration cohorts and income-tier segmentation.
package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

// groupByUser buckets a cross-user ledger slice per owner.
func groupByUser(transactions []*entity.Transaction) map[uuid.UUID][]*entity.Transaction {
	grouped := make(map[uuid.UUID][]*entity.Transaction)
	for _, tx := range transactions {
		grouped[tx.UserID] = append(grouped[tx.UserID], tx)
	}
	return grouped
}

// forEachUser fans per-user work out over a bounded pool and stops
// early when the scan context expires. Results are written by index so
// no ordering is lost.
func forEachUser(ctx context.Context, users []*entity.User, workers int, fn func(i int, user *entity.User)) error {
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, user := range users {
		select {
		case <-ctx.Done():
			wg.Wait()
			return scanErr(ctx.Err())
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, user *entity.User) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i, user)
		}(i, user)
	}

	wg.Wait()
	return scanErr(ctx.Err())
}

// scanErr maps a scan context failure onto the analytics taxonomy. A
// deadline hit is retryable, typically with a narrower range.
func scanErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerror.NewRetryableAnalyticsError(domainerror.ErrCodeScanTimeout, "analytics scan timed out", domainerror.ErrScanTimeout)
	}
	return domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "analytics scan aborted", err)
}

// loadScanData fetches the directory and the window's ledger once.
func loadScanData(ctx context.Context, userRepository adapter.UserRepository, transactionRepository adapter.TransactionRepository, rng entity.PeriodRange) ([]*entity.User, map[uuid.UUID][]*entity.Transaction, error) {
	users, err := userRepository.FindAll(ctx)
	if err != nil {
		return nil, nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load users", err)
	}

	transactions, err := transactionRepository.FindAllInRange(ctx, rng.From, rng.To)
	if err != nil {
		return nil, nil, domainerror.NewAnalyticsError(domainerror.ErrCodeAnalyticsInternalError, "failed to load transactions", err)
	}

	return users, groupByUser(transactions), nil
}
