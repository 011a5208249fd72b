package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// UserModel represents the users table, a read-mostly projection of
// the directory owned by the external auth/profile service.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role         string    `gorm:"type:varchar(10);not null;default:'user'"`
	RegisteredAt time.Time `gorm:"type:timestamp;not null;index"`

	ProfileIncome *decimal.Decimal `gorm:"type:decimal(15,2)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		Role:          entity.UserRole(m.Role),
		RegisteredAt:  m.RegisteredAt,
		ProfileIncome: m.ProfileIncome,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:            user.ID,
		Email:         user.Email,
		Role:          string(user.Role),
		RegisteredAt:  user.RegisteredAt,
		ProfileIncome: user.ProfileIncome,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
