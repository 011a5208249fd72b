package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRole distinguishes admin operators from regular users.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the directory projection the analytics engine consumes.
// Account lifecycle (registration, credentials, sessions) is owned by
// the external auth service; this system only reads the directory.
type User struct {
	ID           uuid.UUID
	Email        string
	Role         UserRole
	RegisteredAt time.Time

	// ProfileIncome is the user's declared monthly income. Nil when the
	// user never filled in their profile; segmentation then falls back
	// to the income observed in the analysis window.
	ProfileIncome *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
