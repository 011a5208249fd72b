package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// UserRepository reads the user directory maintained by the external
// auth/profile service.
type UserRepository interface {
	// FindAll returns every registered user.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByID returns a single user.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
