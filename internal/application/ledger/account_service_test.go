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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeProjection(customerID uuid.UUID) *customer.Projection {
	return customer.NewProjection(customerID, "Ada", "Lovelace", "ACTIVE", time.Now().UTC())
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestAccountServiceCreate(t *testing.T) {
	customerID := uuid.New()
	req := CreateAccountRequest{
		AccountNumber:  "1234567890",
		CustomerID:     customerID.String(),
		AccountType:    "SAVINGS",
		InitialBalance: "100.00",
	}

	t.Run("creates account for active customer", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		projections.On("FindByID", mock.Anything, customerID).Return(activeProjection(customerID), nil)
		accountRepo.On("ExistsByAccountNumber", mock.Anything, "1234567890").Return(false, nil)
		accountRepo.On("Save", mock.Anything, mock.MatchedBy(func(a *ledger.Account) bool {
			return a.AccountNumber == "1234567890" && len(a.GetDomainEvents()) == 1
		})).Return(nil)

		response, err := service.Create(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "1234567890", response.AccountNumber)
		assert.Equal(t, "SAVINGS", response.AccountType)
		assert.Equal(t, "ACTIVE", response.Status)
		assert.Equal(t, "100.00", response.Balance)
		assert.Equal(t, "Ada Lovelace", response.CustomerName)
		accountRepo.AssertExpectations(t)
		projections.AssertExpectations(t)
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		projections.On("FindByID", mock.Anything, customerID).
			Return(nil, customer.NewCustomerNotFoundError(customerID))

		_, err := service.Create(context.Background(), req)
		assert.Equal(t, customer.ErrCodeCustomerNotFound, domainErrCode(t, err))
		accountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive customer", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		blocked := customer.NewProjection(customerID, "Ada", "Lovelace", "BLOCKED", time.Now().UTC())
		projections.On("FindByID", mock.Anything, customerID).Return(blocked, nil)

		_, err := service.Create(context.Background(), req)
		assert.Equal(t, customer.ErrCodeInactiveCustomer, domainErrCode(t, err))
		accountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate account number", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		projections.On("FindByID", mock.Anything, customerID).Return(activeProjection(customerID), nil)
		accountRepo.On("ExistsByAccountNumber", mock.Anything, "1234567890").Return(true, nil)

		_, err := service.Create(context.Background(), req)
		assert.Equal(t, ledger.ErrCodeDuplicateAccountNumber, domainErrCode(t, err))
	})

	t.Run("rejects negative initial balance", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		projections.On("FindByID", mock.Anything, customerID).Return(activeProjection(customerID), nil)
		accountRepo.On("ExistsByAccountNumber", mock.Anything, "1234567890").Return(false, nil)

		negative := req
		negative.InitialBalance = "-1.00"
		_, err := service.Create(context.Background(), negative)
		assert.Equal(t, ledger.ErrCodeNegativeInitialBalance, domainErrCode(t, err))
	})
}

func TestAccountServiceChangeStatus(t *testing.T) {
	customerID := uuid.New()

	newAccount := func(t *testing.T, balance float64) *ledger.Account {
		t.Helper()
		account, err := ledger.NewAccount("1234567890", customerID, ledger.AccountTypeSavings, valueobject.NewMoneyUSDFromFloat(balance))
		require.NoError(t, err)
		account.ClearDomainEvents()
		return account
	}

	t.Run("suspends an account", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		account := newAccount(t, 100)
		accountRepo.On("FindByID", mock.Anything, account.GetID()).Return(account, nil)
		accountRepo.On("Update", mock.Anything, account).Return(nil)
		projections.On("FindByID", mock.Anything, customerID).Return(activeProjection(customerID), nil)

		response, err := service.ChangeStatus(context.Background(), account.GetID(), ChangeStatusRequest{Status: "SUSPENDED"})
		require.NoError(t, err)
		assert.Equal(t, "SUSPENDED", response.Status)
	})

	t.Run("close enforces zero balance", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		account := newAccount(t, 10)
		accountRepo.On("FindByID", mock.Anything, account.GetID()).Return(account, nil)

		_, err := service.ChangeStatus(context.Background(), account.GetID(), ChangeStatusRequest{Status: "CLOSED"})
		assert.Equal(t, ledger.ErrCodeCloseWithBalance, domainErrCode(t, err))
		accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("surfaces concurrency conflicts", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		account := newAccount(t, 100)
		accountRepo.On("FindByID", mock.Anything, account.GetID()).Return(account, nil)
		accountRepo.On("Update", mock.Anything, account).Return(shared.ErrConcurrencyConflict)

		_, err := service.ChangeStatus(context.Background(), account.GetID(), ChangeStatusRequest{Status: "INACTIVE"})
		assert.Equal(t, shared.ErrConcurrencyConflict.Code, domainErrCode(t, err))
	})
}

func TestAccountServiceGetByID(t *testing.T) {
	customerID := uuid.New()
	account, err := ledger.NewAccount("1234567890", customerID, ledger.AccountTypeChecking, valueobject.ZeroUSD())
	require.NoError(t, err)
	account.ClearDomainEvents()

	t.Run("falls back to placeholder name when projection is behind", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		accountRepo.On("FindByID", mock.Anything, account.GetID()).Return(account, nil)
		projections.On("FindByID", mock.Anything, customerID).
			Return(nil, customer.NewCustomerNotFoundError(customerID))

		response, err := service.GetByID(context.Background(), account.GetID())
		require.NoError(t, err)
		assert.Equal(t, customer.UnknownCustomerName, response.CustomerName)
	})

	t.Run("propagates not found", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		projections := new(MockProjectionRepository)
		service := NewAccountService(accountRepo, projections)

		id := uuid.New()
		accountRepo.On("FindByID", mock.Anything, id).Return(nil, ledger.NewAccountNotFoundError(id))

		_, err := service.GetByID(context.Background(), id)
		assert.Equal(t, ledger.ErrCodeAccountNotFound, domainErrCode(t, err))
	})
}
