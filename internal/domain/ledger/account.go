package ledger

import (
	"regexp"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AccountType distinguishes the product backing an account
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// IsValid reports whether the account type is known
func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

var accountNumberPattern = regexp.MustCompile(`^[0-9]{6,20}$`)

// ValidateAccountNumber checks the external account identifier format:
// 6 to 20 digits, nothing else.
func ValidateAccountNumber(number string) error {
	if !accountNumberPattern.MatchString(number) {
		return shared.NewDomainError(
			ErrCodeInvalidAccountNumber,
			"account number must be 6 to 20 digits",
		).WithParam("account_number", number)
	}
	return nil
}

// Account is the ledger aggregate root. The balance only moves through
// Deposit and Withdraw, and every movement is paired with a Transaction
// recorded by the caller.
type Account struct {
	shared.BaseAggregateRoot
	AccountNumber string
	CustomerID    uuid.UUID
	Type          AccountType
	Status        AccountStatus
	Balance       valueobject.Money
}

// NewAccount creates an account in ACTIVE status and buffers an
// AccountCreatedEvent. The initial balance may be zero but never negative.
func NewAccount(accountNumber string, customerID uuid.UUID, accountType AccountType, initialBalance valueobject.Money) (*Account, error) {
	if err := ValidateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	if customerID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithParam("field", "customer_id")
	}
	if !accountType.IsValid() {
		return nil, shared.ErrInvalidInput.WithParam("field", "account_type").WithParam("value", string(accountType))
	}
	if initialBalance.IsNegative() {
		return nil, shared.NewDomainError(
			ErrCodeNegativeInitialBalance,
			"initial balance cannot be negative",
		).WithParam("initial_balance", initialBalance.StringFixed())
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountNumber:     accountNumber,
		CustomerID:        customerID,
		Type:              accountType,
		Status:            AccountStatusActive,
		Balance:           initialBalance,
	}
	account.AddDomainEvent(NewAccountCreatedEvent(account))
	return account, nil
}

// ReconstituteAccount rebuilds an account from persisted state without
// validation and without buffering events.
func ReconstituteAccount(
	entity shared.BaseEntity,
	version int,
	accountNumber string,
	customerID uuid.UUID,
	accountType AccountType,
	status AccountStatus,
	balance valueobject.Money,
) *Account {
	return &Account{
		BaseAggregateRoot: shared.ReconstituteBaseAggregateRoot(entity, version),
		AccountNumber:     accountNumber,
		CustomerID:        customerID,
		Type:              accountType,
		Status:            status,
		Balance:           balance,
	}
}

// IsActive reports whether the account accepts balance movements
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// EnsureActive returns an error unless the account is ACTIVE
func (a *Account) EnsureActive() error {
	if !a.IsActive() {
		return NewInactiveAccountError(a.AccountNumber, a.Status)
	}
	return nil
}

// Deposit credits the amount to the balance. The account must be active
// and the amount strictly positive.
func (a *Account) Deposit(amount valueobject.Money) error {
	if err := a.EnsureActive(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewInvalidAmountError(amount)
	}
	balance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	a.Touch()
	return nil
}

// Withdraw debits the amount from the balance. The account must be active,
// the amount strictly positive, and the balance sufficient.
func (a *Account) Withdraw(amount valueobject.Money) error {
	if err := a.EnsureActive(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewInvalidAmountError(amount)
	}
	insufficient, err := a.Balance.LessThan(amount)
	if err != nil {
		return err
	}
	if insufficient {
		return NewInsufficientBalanceError(a.AccountNumber, a.Balance, amount)
	}
	balance, err := a.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	a.Touch()
	return nil
}

// RegisterTransactionPerformed buffers a TransactionPerformedEvent after a
// transaction has been recorded against this account.
func (a *Account) RegisterTransactionPerformed(transaction *Transaction) {
	a.AddDomainEvent(NewTransactionPerformedEvent(a, transaction))
}

// ChangeStatus moves the account through its lifecycle table
func (a *Account) ChangeStatus(target AccountStatus) error {
	if !CanTransition(a.Status, target) {
		return NewInvalidStatusTransitionError(a.Status, target)
	}
	a.Status = target
	a.Touch()
	return nil
}

// Activate moves the account to ACTIVE
func (a *Account) Activate() error {
	return a.ChangeStatus(AccountStatusActive)
}

// Deactivate moves the account to INACTIVE
func (a *Account) Deactivate() error {
	return a.ChangeStatus(AccountStatusInactive)
}

// Suspend moves the account to SUSPENDED
func (a *Account) Suspend() error {
	return a.ChangeStatus(AccountStatusSuspended)
}

// Close moves the account to CLOSED. Closing requires a zero balance.
func (a *Account) Close() error {
	if !a.Balance.IsZero() {
		return NewCloseWithBalanceError(a.AccountNumber, a.Balance)
	}
	return a.ChangeStatus(AccountStatusClosed)
}
