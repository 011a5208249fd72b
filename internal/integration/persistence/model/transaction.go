// Package model defines database models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table. The ledger is
// append-only: rows are never updated or deleted.
type TransactionModel struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_occurred"`
	Kind   string          `gorm:"type:varchar(10);not null;index"`
	Amount decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	OccurredAt time.Time `gorm:"type:timestamp;not null;index:idx_transactions_user_occurred"`
	RecordedAt time.Time `gorm:"type:timestamp;not null"`

	Description string `gorm:"type:varchar(220)"`
	Origin      string `gorm:"type:varchar(10);not null"`

	CategoryCode     string `gorm:"type:varchar(2)"`
	Essential        bool   `gorm:"default:false"`
	Fixed            bool   `gorm:"default:false"`
	Recurring        bool   `gorm:"default:false"`
	FinancialSubtype string `gorm:"type:varchar(25)"`

	IsInternalTransfer bool `gorm:"default:false"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		UserID:       m.UserID,
		Kind:         entity.MovementKind(m.Kind),
		Amount:       m.Amount,
		OccurredAt:   m.OccurredAt,
		RecordedAt:   m.RecordedAt,
		Description:  m.Description,
		Origin:       entity.TransactionOrigin(m.Origin),
		CategoryCode: m.CategoryCode,
		Tags: entity.ExpenseTags{
			Essential: m.Essential,
			Fixed:     m.Fixed,
			Recurring: m.Recurring,
		},
		FinancialSubtype:   entity.FinancialSubtype(m.FinancialSubtype),
		IsInternalTransfer: m.IsInternalTransfer,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                 transaction.ID,
		UserID:             transaction.UserID,
		Kind:               string(transaction.Kind),
		Amount:             transaction.Amount,
		OccurredAt:         transaction.OccurredAt,
		RecordedAt:         transaction.RecordedAt,
		Description:        transaction.Description,
		Origin:             string(transaction.Origin),
		CategoryCode:       transaction.CategoryCode,
		Essential:          transaction.Tags.Essential,
		Fixed:              transaction.Tags.Fixed,
		Recurring:          transaction.Tags.Recurring,
		FinancialSubtype:   string(transaction.FinancialSubtype),
		IsInternalTransfer: transaction.IsInternalTransfer,
	}
}
