package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/banking/backend/internal/domain/customer"
	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) RecordTransaction(ctx context.Context, account *ledger.Account, transaction *ledger.Transaction) error {
	args := m.Called(ctx, account, transaction)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ledger.Account], error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.Account]), args.Error(1)
}

func (m *MockAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*ledger.Account], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.Account]), args.Error(1)
}

// MockTransactionRepository is a mock implementation of ledger.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, transaction *ledger.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID, filter ledger.TransactionFilter) (*shared.Paginated[*ledger.Transaction], error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*ledger.Transaction]), args.Error(1)
}

func (m *MockTransactionRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountByType(ctx context.Context, accountID uuid.UUID, movementType ledger.TransactionType, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, movementType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockProjectionRepository is a mock implementation of customer.ProjectionRepository
type MockProjectionRepository struct {
	mock.Mock
}

func (m *MockProjectionRepository) Save(ctx context.Context, projection *customer.Projection) error {
	args := m.Called(ctx, projection)
	return args.Error(0)
}

func (m *MockProjectionRepository) FindByID(ctx context.Context, customerID uuid.UUID) (*customer.Projection, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Projection), args.Error(1)
}

func (m *MockProjectionRepository) ExistsByID(ctx context.Context, customerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func usdAmount(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(amount, valueobject.USD)
	require.NoError(t, err)
	return money
}

func pageOf(txns ...*ledger.Transaction) *shared.Paginated[*ledger.Transaction] {
	page := shared.NewPaginated(txns, int64(len(txns)), 1, 20)
	return &page
}
