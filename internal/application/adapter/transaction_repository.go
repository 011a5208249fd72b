// Package adapter defines the interfaces the application layer consumes.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	From  *time.Time
	To    *time.Time
	Kind  *entity.MovementKind
	Page  int
	Limit int
}

// TransactionRepository provides access to the append-only ledger.
type TransactionRepository interface {
	// Create appends a transaction to the ledger.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByUserAndRange returns all of a user's transactions with
	// occurred_at in the half-open range [from, to).
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error)

	// FindAllInRange returns every user's transactions with occurred_at
	// in [from, to). Used by the cross-user cohort/segmentation scans.
	FindAllInRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)

	// List returns a user's transactions filtered and paginated,
	// ordered by occurred_at descending.
	List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) (*entity.TransactionListResult, error)
}
