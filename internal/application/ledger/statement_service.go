package ledger

import (
	"context"

	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StatementService answers read queries over accounts and their movements
type StatementService struct {
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(accountRepo ledger.AccountRepository, transactionRepo ledger.TransactionRepository) *StatementService {
	return &StatementService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// GetTransaction retrieves a single movement record
func (s *StatementService) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(transaction)
	return &response, nil
}

// GetStatement returns the account header and a page of its movements,
// newest first.
func (s *StatementService) GetStatement(ctx context.Context, accountID uuid.UUID, filter StatementFilter) (*StatementResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	repoFilter := toTransactionFilter(filter)
	page, err := s.transactionRepo.FindByAccountID(ctx, accountID, repoFilter)
	if err != nil {
		return nil, err
	}

	transactions := make([]TransactionResponse, 0, len(page.Items))
	for _, txn := range page.Items {
		transactions = append(transactions, ToTransactionResponse(txn))
	}

	deposits, err := s.transactionRepo.SumAmountByType(ctx, accountID, ledger.TransactionTypeDeposit, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.transactionRepo.SumAmountByType(ctx, accountID, ledger.TransactionTypeWithdrawal, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	return &StatementResponse{
		Account:          ToAccountResponse(account),
		Transactions:     transactions,
		TotalDeposits:    deposits.StringFixed(2),
		TotalWithdrawals: withdrawals.StringFixed(2),
		TotalCount:       page.Total,
		Page:             repoFilter.Page,
		PageSize:         repoFilter.PageSize,
	}, nil
}

func toTransactionFilter(filter StatementFilter) ledger.TransactionFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.OrderBy = "created_at"
	base.OrderDir = "desc"

	repoFilter := ledger.TransactionFilter{Filter: base, From: filter.From, To: filter.To}
	if filter.Type != "" {
		movementType := ledger.TransactionType(filter.Type)
		repoFilter.Type = &movementType
	}
	return repoFilter
}
