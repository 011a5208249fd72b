// Package persistence implements the repository interfaces over gorm.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
	"github.com/finlit-cms/backend/internal/integration/persistence/model"
)

// transactionRepository implements adapter.TransactionRepository.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create appends a transaction to the ledger.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserAndRange returns a user's transactions with occurred_at in
// the half-open range [from, to).
func (r *transactionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, from, to).
		Order("occurred_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(transactionModels), nil
}

// FindAllInRange returns every user's transactions in [from, to).
func (r *transactionRepository) FindAllInRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Order("occurred_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(transactionModels), nil
}

// List returns a filtered, paginated page of a user's transactions,
// newest first.
func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at < ?", *filter.To)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("occurred_at DESC, recorded_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &entity.TransactionListResult{
		Transactions: toEntities(transactionModels),
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   totalPages,
	}, nil
}

func toEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
