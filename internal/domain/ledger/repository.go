package ledger

import (
	"context"
	"time"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository is the persistence port for the Account aggregate.
// Save and Update must persist the aggregate's buffered domain events to
// the outbox within the same transaction.
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	// Update persists the aggregate guarded by its current version and
	// returns shared.ErrConcurrencyConflict on a stale write.
	Update(ctx context.Context, account *Account) error
	// RecordTransaction persists the mutated account (version guarded),
	// appends the movement row, and saves the buffered events to the
	// outbox within a single database transaction.
	RecordTransaction(ctx context.Context, account *Account, transaction *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*Account, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Account], error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Account], error)
}

// TransactionFilter narrows statement queries to a window and kind
type TransactionFilter struct {
	shared.Filter
	Type *TransactionType
	From *time.Time
	To   *time.Time
}

// TransactionRepository is the persistence port for movement records.
// Transactions are append-only; there is no update or delete.
type TransactionRepository interface {
	Save(ctx context.Context, transaction *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID, filter TransactionFilter) (*shared.Paginated[*Transaction], error)
	CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)
	// SumAmountByType totals movement amounts of one kind inside the
	// window; nil bounds leave that side open.
	SumAmountByType(ctx context.Context, accountID uuid.UUID, movementType TransactionType, from, to *time.Time) (decimal.Decimal, error)
}
