package ledger

import (
	"fmt"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TransactionType is the direction of a balance movement
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// IsValid reports whether the transaction type is known
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// Transaction is an immutable record of a single balance movement. Once
// created it is never updated or deleted.
type Transaction struct {
	shared.BaseEntity
	AccountID     uuid.UUID
	Type          TransactionType
	Amount        valueobject.Money
	BalanceBefore valueobject.Money
	BalanceAfter  valueobject.Money
	Description   string
}

// NewTransaction creates a movement record and verifies that the captured
// balances are arithmetically consistent with the amount and type:
// balanceAfter must equal balanceBefore plus the amount for a deposit, or
// balanceBefore minus the amount for a withdrawal.
func NewTransaction(
	accountID uuid.UUID,
	transactionType TransactionType,
	amount valueobject.Money,
	balanceBefore valueobject.Money,
	balanceAfter valueobject.Money,
	description string,
) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithParam("field", "account_id")
	}
	if !transactionType.IsValid() {
		return nil, shared.NewDomainError(
			ErrCodeInvalidTransactionType,
			fmt.Sprintf("unknown transaction type %q", transactionType),
		).WithParam("type", string(transactionType))
	}
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount)
	}

	var expected valueobject.Money
	var err error
	switch transactionType {
	case TransactionTypeDeposit:
		expected, err = balanceBefore.Add(amount)
	case TransactionTypeWithdrawal:
		expected, err = balanceBefore.Subtract(amount)
	}
	if err != nil {
		return nil, err
	}
	if !balanceAfter.Equals(expected) {
		return nil, shared.NewDomainError(
			ErrCodeBalanceInconsistent,
			fmt.Sprintf("balance after %s does not match %s %s from %s",
				balanceAfter.StringFixed(), transactionType, amount.StringFixed(), balanceBefore.StringFixed()),
		).WithParam("balance_before", balanceBefore.StringFixed()).
			WithParam("balance_after", balanceAfter.StringFixed()).
			WithParam("amount", amount.StringFixed()).
			WithParam("type", string(transactionType))
	}

	return &Transaction{
		BaseEntity:    shared.NewBaseEntity(),
		AccountID:     accountID,
		Type:          transactionType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   description,
	}, nil
}

// ReconstituteTransaction rebuilds a movement record from persisted state
// without re-running the consistency check.
func ReconstituteTransaction(
	entity shared.BaseEntity,
	accountID uuid.UUID,
	transactionType TransactionType,
	amount valueobject.Money,
	balanceBefore valueobject.Money,
	balanceAfter valueobject.Money,
	description string,
) *Transaction {
	return &Transaction{
		BaseEntity:    entity,
		AccountID:     accountID,
		Type:          transactionType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   description,
	}
}
