package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormAccountRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save persists a new account and its buffered events in one transaction
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.AccountModelFromDomain(account)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return r.saveEvents(ctx, tx, account)
	})
}

// Update persists the aggregate guarded by its version. The row's version
// is bumped on success and the in-memory aggregate follows.
func (r *GormAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateLocked(tx, account); err != nil {
			return err
		}
		if err := r.saveEvents(ctx, tx, account); err != nil {
			return err
		}
		account.IncrementVersion()
		return nil
	})
}

// RecordTransaction persists the mutated account, appends the movement row,
// and saves the buffered events to the outbox within a single transaction.
func (r *GormAccountRepository) RecordTransaction(ctx context.Context, account *ledger.Account, transaction *ledger.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateLocked(tx, account); err != nil {
			return err
		}
		if err := tx.Create(models.TransactionModelFromDomain(transaction)).Error; err != nil {
			return err
		}
		if err := r.saveEvents(ctx, tx, account); err != nil {
			return err
		}
		account.IncrementVersion()
		return nil
	})
}

func (r *GormAccountRepository) updateLocked(tx *gorm.DB, account *ledger.Account) error {
	result := tx.Model(&models.AccountModel{}).
		Where("id = ? AND version = ?", account.GetID(), account.GetVersion()).
		Updates(map[string]any{
			"status":     string(account.Status),
			"balance":    account.Balance.Amount(),
			"currency":   string(account.Balance.Currency()),
			"version":    account.GetVersion() + 1,
			"updated_at": account.GetUpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithParam("account_id", account.GetID().String())
	}
	return nil
}

func (r *GormAccountRepository) saveEvents(ctx context.Context, tx *gorm.DB, account *ledger.Account) error {
	events := account.GetDomainEvents()
	if r.outboxSaver == nil || len(events) == 0 {
		return nil
	}
	if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
		return fmt.Errorf("failed to save events to outbox: %w", err)
	}
	return nil
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.NewAccountNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccountNumber finds an account by its external number
func (r *GormAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.NewAccountNotFoundByNumberError(accountNumber)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByAccountNumber reports whether an account number is taken
func (r *GormAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByCustomerID finds a customer's accounts with pagination
func (r *GormAccountRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ledger.Account], error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("customer_id = ?", customerID)
	return r.paginate(query, filter)
}

// List finds accounts with pagination
func (r *GormAccountRepository) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*ledger.Account], error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	return r.paginate(query, filter)
}

func (r *GormAccountRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[*ledger.Account], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var accountModels []models.AccountModel
	if err := query.
		Order(orderClause(filter)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*ledger.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToDomain()
	}
	page := shared.NewPaginated(accounts, total, filter.Page, filter.PageSize)
	return &page, nil
}

// orderClause builds a safe ORDER BY from the filter. Only known columns
// are accepted; anything else falls back to created_at.
func orderClause(filter shared.Filter) string {
	column := "created_at"
	switch filter.OrderBy {
	case "created_at", "updated_at", "account_number", "balance", "status":
		column = filter.OrderBy
	}
	direction := "desc"
	if filter.OrderDir == "asc" {
		direction = "asc"
	}
	return column + " " + direction
}
