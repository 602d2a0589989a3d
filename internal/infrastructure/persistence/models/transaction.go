package models

import (
	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for movement records.
// Rows are append-only.
type TransactionModel struct {
	BaseModel
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_account_created,priority:1"`
	Type          string          `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:USD"`
	Description   string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to the domain entity
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	currency := valueobject.Currency(m.Currency)
	return ledger.ReconstituteTransaction(
		m.BaseModel.ToDomain(),
		m.AccountID,
		ledger.TransactionType(m.Type),
		valueobject.MustNewMoney(m.Amount, currency),
		valueobject.MustNewMoney(m.BalanceBefore, currency),
		valueobject.MustNewMoney(m.BalanceAfter, currency),
		m.Description,
	)
}

// TransactionModelFromDomain builds the persistence model from the entity
func TransactionModelFromDomain(txn *ledger.Transaction) *TransactionModel {
	model := &TransactionModel{
		AccountID:     txn.AccountID,
		Type:          string(txn.Type),
		Amount:        txn.Amount.Amount(),
		BalanceBefore: txn.BalanceBefore.Amount(),
		BalanceAfter:  txn.BalanceAfter.Amount(),
		Currency:      string(txn.Amount.Currency()),
		Description:   txn.Description,
	}
	model.FromDomainBaseEntity(txn.BaseEntity)
	return model
}
