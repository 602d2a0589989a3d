package ledger

import (
	"fmt"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Error codes surfaced by the ledger domain. Boundary layers map these to
// transport responses; the domain only knows codes and parameters.
const (
	ErrCodeAccountNotFound         = "ACCOUNT_NOT_FOUND"
	ErrCodeTransactionNotFound     = "TRANSACTION_NOT_FOUND"
	ErrCodeInsufficientBalance     = "INSUFFICIENT_BALANCE"
	ErrCodeInactiveAccount         = "INACTIVE_ACCOUNT"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeCloseWithBalance        = "CLOSE_WITH_BALANCE"
	ErrCodeInvalidAccountNumber    = "INVALID_ACCOUNT_NUMBER"
	ErrCodeInvalidAmount           = "INVALID_AMOUNT"
	ErrCodeNegativeInitialBalance  = "NEGATIVE_INITIAL_BALANCE"
	ErrCodeBalanceInconsistent     = "BALANCE_INCONSISTENT"
	ErrCodeDuplicateAccountNumber  = "DUPLICATE_ACCOUNT_NUMBER"
	ErrCodeInvalidTransactionType  = "INVALID_TRANSACTION_TYPE"
)

// NewAccountNotFoundError reports a lookup miss by account ID
func NewAccountNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeAccountNotFound,
		fmt.Sprintf("account not found with id %s", id),
	).WithParam("account_id", id.String())
}

// NewAccountNotFoundByNumberError reports a lookup miss by account number
func NewAccountNotFoundByNumberError(number string) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeAccountNotFound,
		fmt.Sprintf("account not found with number %s", number),
	).WithParam("account_number", number)
}

// NewTransactionNotFoundError reports a lookup miss by transaction ID
func NewTransactionNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeTransactionNotFound,
		fmt.Sprintf("transaction not found with id %s", id),
	).WithParam("transaction_id", id.String())
}

// NewInsufficientBalanceError reports a withdrawal exceeding the balance
func NewInsufficientBalanceError(accountNumber string, balance, requested valueobject.Money) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeInsufficientBalance,
		fmt.Sprintf("insufficient balance on account %s: balance %s, requested %s",
			accountNumber, balance.StringFixed(), requested.StringFixed()),
	).WithParam("account_number", accountNumber).
		WithParam("balance", balance.StringFixed()).
		WithParam("requested", requested.StringFixed())
}

// NewInactiveAccountError reports an operation on a non-active account
func NewInactiveAccountError(accountNumber string, status AccountStatus) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeInactiveAccount,
		fmt.Sprintf("account %s is not active (status %s)", accountNumber, status),
	).WithParam("account_number", accountNumber).
		WithParam("status", string(status))
}

// NewInvalidStatusTransitionError reports a rejected status change
func NewInvalidStatusTransitionError(from, to AccountStatus) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeInvalidStatusTransition,
		fmt.Sprintf("invalid account status transition from %s to %s", from, to),
	).WithParam("from", string(from)).
		WithParam("to", string(to))
}

// NewCloseWithBalanceError reports an attempt to close a funded account
func NewCloseWithBalanceError(accountNumber string, balance valueobject.Money) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeCloseWithBalance,
		fmt.Sprintf("account %s cannot be closed with balance %s", accountNumber, balance.StringFixed()),
	).WithParam("account_number", accountNumber).
		WithParam("balance", balance.StringFixed())
}

// NewInvalidAmountError reports a non-positive transaction amount
func NewInvalidAmountError(amount valueobject.Money) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeInvalidAmount,
		"transaction amount must be positive",
	).WithParam("amount", amount.StringFixed())
}
