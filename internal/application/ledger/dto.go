package ledger

import (
	"time"

	"github.com/banking/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// CreateAccountRequest represents a request to open a new account
type CreateAccountRequest struct {
	AccountNumber  string  `json:"account_number" binding:"required,numeric,min=6,max=20"`
	CustomerID     string  `json:"customer_id" binding:"required,uuid"`
	AccountType    string  `json:"account_type" binding:"required,oneof=SAVINGS CHECKING"`
	InitialBalance string  `json:"initial_balance" binding:"omitempty"`
	Currency       *string `json:"currency" binding:"omitempty,oneof=USD EUR GBP MXN COP"`
}

// MovementRequest represents a deposit or withdrawal request
type MovementRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// ChangeStatusRequest represents a lifecycle change request
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE SUSPENDED CLOSED"`
}

// AccountResponse is the outward view of an account
type AccountResponse struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	AccountType   string    `json:"account_type"`
	Status        string    `json:"status"`
	Balance       string    `json:"balance"`
	Currency      string    `json:"currency"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToAccountResponse maps the aggregate to its outward view
func ToAccountResponse(account *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:            account.GetID(),
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID,
		AccountType:   string(account.Type),
		Status:        string(account.Status),
		Balance:       account.Balance.StringFixed(),
		Currency:      string(account.Balance.Currency()),
		Version:       account.GetVersion(),
		CreatedAt:     account.GetCreatedAt(),
		UpdatedAt:     account.GetUpdatedAt(),
	}
}

// TransactionResponse is the outward view of a movement record
type TransactionResponse struct {
	ID            uuid.UUID `json:"id"`
	AccountID     uuid.UUID `json:"account_id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	Currency      string    `json:"currency"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToTransactionResponse maps a movement record to its outward view
func ToTransactionResponse(txn *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.GetID(),
		AccountID:     txn.AccountID,
		Type:          string(txn.Type),
		Amount:        txn.Amount.StringFixed(),
		BalanceBefore: txn.BalanceBefore.StringFixed(),
		BalanceAfter:  txn.BalanceAfter.StringFixed(),
		Currency:      string(txn.Amount.Currency()),
		Description:   txn.Description,
		CreatedAt:     txn.GetCreatedAt(),
	}
}

// StatementResponse combines an account header with a page of movements
type StatementResponse struct {
	Account          AccountResponse       `json:"account"`
	Transactions     []TransactionResponse `json:"transactions"`
	TotalDeposits    string                `json:"total_deposits"`
	TotalWithdrawals string                `json:"total_withdrawals"`
	TotalCount       int64                 `json:"total_count"`
	Page             int                   `json:"page"`
	PageSize         int                   `json:"page_size"`
}

// StatementFilter narrows a statement query
type StatementFilter struct {
	Type     string     `form:"type" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}
