package ledger

import (
	"context"

	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TransactionService executes balance movements against accounts. Every
// movement loads the account, mutates the balance through the aggregate,
// records a Transaction capturing the before and after balances, and
// persists both together with the buffered events.
type TransactionService struct {
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(accountRepo ledger.AccountRepository, transactionRepo ledger.TransactionRepository) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Deposit credits an account
func (s *TransactionService) Deposit(ctx context.Context, accountID uuid.UUID, req MovementRequest) (*TransactionResponse, error) {
	return s.execute(ctx, accountID, ledger.TransactionTypeDeposit, req)
}

// Withdraw debits an account
func (s *TransactionService) Withdraw(ctx context.Context, accountID uuid.UUID, req MovementRequest) (*TransactionResponse, error) {
	return s.execute(ctx, accountID, ledger.TransactionTypeWithdrawal, req)
}

func (s *TransactionService) execute(ctx context.Context, accountID uuid.UUID, movementType ledger.TransactionType, req MovementRequest) (*TransactionResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount, account.Balance.Currency())
	if err != nil {
		return nil, err
	}

	balanceBefore := account.Balance
	switch movementType {
	case ledger.TransactionTypeDeposit:
		err = account.Deposit(amount)
	case ledger.TransactionTypeWithdrawal:
		err = account.Withdraw(amount)
	}
	if err != nil {
		return nil, err
	}

	transaction, err := ledger.NewTransaction(account.GetID(), movementType, amount, balanceBefore, account.Balance, req.Description)
	if err != nil {
		return nil, err
	}
	account.RegisterTransactionPerformed(transaction)

	if err := s.accountRepo.RecordTransaction(ctx, account, transaction); err != nil {
		return nil, err
	}
	account.ClearDomainEvents()

	response := ToTransactionResponse(transaction)
	return &response, nil
}
