package models

import (
	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account aggregate
type AccountModel struct {
	AggregateModel
	AccountNumber string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountType   string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:ACTIVE;index"`
	Balance       decimal.Decimal `gorm:"type:numeric(19,2);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:USD"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to the domain aggregate
func (m *AccountModel) ToDomain() *ledger.Account {
	return ledger.ReconstituteAccount(
		m.BaseModel.ToDomain(),
		m.Version,
		m.AccountNumber,
		m.CustomerID,
		ledger.AccountType(m.AccountType),
		ledger.AccountStatus(m.Status),
		valueobject.MustNewMoney(m.Balance, valueobject.Currency(m.Currency)),
	)
}

// AccountModelFromDomain builds the persistence model from the aggregate
func AccountModelFromDomain(account *ledger.Account) *AccountModel {
	model := &AccountModel{
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID,
		AccountType:   string(account.Type),
		Status:        string(account.Status),
		Balance:       account.Balance.Amount(),
		Currency:      string(account.Balance.Currency()),
	}
	model.FromDomainAggregateRoot(account.BaseAggregateRoot)
	return model
}
