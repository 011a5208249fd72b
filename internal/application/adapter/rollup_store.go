package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// RollupStore persists computed period summaries keyed uniquely by
// (user, year, month). It is a cache in front of the aggregator: the
// store is eventually consistent with the ledger and recomputation is
// always explicit.
type RollupStore interface {
	// Upsert stores the summary with overwrite-on-conflict semantics.
	// Concurrent upserts for the same key resolve last-writer-wins;
	// both writers derive from the same deterministic function.
	Upsert(ctx context.Context, summary *entity.PeriodSummary) error

	// Get returns the last stored summary for the key, or a
	// rollup-not-found error. Absence is distinct from a zero summary.
	Get(ctx context.Context, userID uuid.UUID, year, month int) (*entity.PeriodSummary, error)
}

// TokenClaims carries the identity extracted from a validated access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.UserRole
}

// TokenService validates access tokens issued by the external auth service.
type TokenService interface {
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
