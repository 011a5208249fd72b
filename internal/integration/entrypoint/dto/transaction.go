package dto

import (
	"github.com/finlit-cms/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request to record a movement.
type CreateTransactionRequest struct {
	Kind       string  `json:"kind" binding:"required"`
	Amount     float64 `json:"amount"`
	OccurredAt string  `json:"occurred_at" binding:"required"`

	Description string `json:"description"`
	Origin      string `json:"origin"`

	CategoryCode     string `json:"category_code"`
	Essential        bool   `json:"essential"`
	Fixed            bool   `json:"fixed"`
	Recurring        bool   `json:"recurring"`
	FinancialSubtype string `json:"financial_subtype"`

	IsInternalTransfer bool `json:"is_internal_transfer"`
}

// TransactionResponse represents a single ledger movement.
type TransactionResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Kind       string  `json:"kind"`
	Amount     float64 `json:"amount"`
	OccurredAt string  `json:"occurred_at"`
	RecordedAt string  `json:"recorded_at"`

	Description string `json:"description,omitempty"`
	Origin      string `json:"origin"`

	CategoryCode     string `json:"category_code,omitempty"`
	Essential        bool   `json:"essential,omitempty"`
	Fixed            bool   `json:"fixed,omitempty"`
	Recurring        bool   `json:"recurring,omitempty"`
	FinancialSubtype string `json:"financial_subtype,omitempty"`

	IsInternalTransfer bool `json:"is_internal_transfer,omitempty"`
}

// TransactionListResponse represents a paginated ledger listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// ToTransactionResponse converts a domain Transaction to its DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                 transaction.ID.String(),
		UserID:             transaction.UserID.String(),
		Kind:               string(transaction.Kind),
		Amount:             toFloat(transaction.Amount),
		OccurredAt:         transaction.OccurredAt.Format("2006-01-02"),
		RecordedAt:         transaction.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
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

// ToTransactionListResponse converts a listing result to its DTO.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	transactions := make([]TransactionResponse, len(result.Transactions))
	for i, tx := range result.Transactions {
		transactions[i] = ToTransactionResponse(tx)
	}
	return TransactionListResponse{
		Transactions: transactions,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		TotalPages:   result.TotalPages,
	}
}
