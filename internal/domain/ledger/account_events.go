package ledger

import (
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const (
	EventTypeAccountCreated       = "account.created"
	EventTypeTransactionPerformed = "transaction.created"

	aggregateTypeAccount = "Account"
)

// AccountCreatedEvent is emitted once when an account is opened
type AccountCreatedEvent struct {
	shared.BaseDomainEvent
	AccountNumber  string            `json:"account_number"`
	CustomerID     uuid.UUID         `json:"customer_id"`
	AccountType    AccountType       `json:"account_type"`
	InitialBalance valueobject.Money `json:"initial_balance"`
	Status         AccountStatus     `json:"status"`
	Currency       string            `json:"currency"`
}

// NewAccountCreatedEvent builds the creation event from the aggregate
func NewAccountCreatedEvent(account *Account) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountCreated, aggregateTypeAccount, account.GetID()),
		AccountNumber:   account.AccountNumber,
		CustomerID:      account.CustomerID,
		AccountType:     account.Type,
		InitialBalance:  account.Balance,
		Status:          account.Status,
		Currency:        string(account.Balance.Currency()),
	}
}

// SchemaVersion implements shared.VersionedEvent
func (e *AccountCreatedEvent) SchemaVersion() int { return 1 }

// TransactionPerformedEvent is emitted after a deposit or withdrawal has
// been recorded against an account
type TransactionPerformedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID         `json:"transaction_id"`
	AccountNumber string            `json:"account_number"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	Type          TransactionType   `json:"type"`
	Amount        valueobject.Money `json:"amount"`
	BalanceBefore valueobject.Money `json:"balance_before"`
	BalanceAfter  valueobject.Money `json:"balance_after"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description,omitempty"`
}

// NewTransactionPerformedEvent builds the movement event from the account
// and the transaction recorded against it
func NewTransactionPerformedEvent(account *Account, transaction *Transaction) *TransactionPerformedEvent {
	return &TransactionPerformedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionPerformed, aggregateTypeAccount, account.GetID()),
		TransactionID:   transaction.GetID(),
		AccountNumber:   account.AccountNumber,
		CustomerID:      account.CustomerID,
		Type:            transaction.Type,
		Amount:          transaction.Amount,
		BalanceBefore:   transaction.BalanceBefore,
		BalanceAfter:    transaction.BalanceAfter,
		Currency:        string(transaction.Amount.Currency()),
		Description:     transaction.Description,
	}
}

// SchemaVersion implements shared.VersionedEvent
func (e *TransactionPerformedEvent) SchemaVersion() int { return 1 }
