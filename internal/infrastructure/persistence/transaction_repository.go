package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save appends a movement record
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a movement record by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.NewTransactionNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccountID finds an account's movements with filtering and pagination
func (r *GormTransactionRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID, filter ledger.TransactionFilter) (*shared.Paginated[*ledger.Transaction], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).Where("account_id = ?", accountID)
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []models.TransactionModel
	if err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*ledger.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToDomain()
	}
	page := shared.NewPaginated(transactions, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CountByAccountID counts an account's movements
func (r *GormTransactionRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// SumAmountByType totals movement amounts of one kind inside the window
func (r *GormTransactionRepository) SumAmountByType(ctx context.Context, accountID uuid.UUID, movementType ledger.TransactionType, from, to *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND type = ?", accountID, string(movementType))
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var total decimal.Decimal
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
