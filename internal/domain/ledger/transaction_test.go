package ledger

import (
	"testing"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	accountID := uuid.New()

	t.Run("records a consistent deposit", func(t *testing.T) {
		txn, err := NewTransaction(accountID, TransactionTypeDeposit, usd(t, 50), usd(t, 100), usd(t, 150), "payroll")
		require.NoError(t, err)

		assert.Equal(t, accountID, txn.AccountID)
		assert.Equal(t, TransactionTypeDeposit, txn.Type)
		assert.True(t, txn.Amount.Equals(usd(t, 50)))
		assert.True(t, txn.BalanceBefore.Equals(usd(t, 100)))
		assert.True(t, txn.BalanceAfter.Equals(usd(t, 150)))
		assert.Equal(t, "payroll", txn.Description)
		assert.NotEqual(t, uuid.Nil, txn.GetID())
	})

	t.Run("records a consistent withdrawal", func(t *testing.T) {
		txn, err := NewTransaction(accountID, TransactionTypeWithdrawal, usd(t, 30), usd(t, 100), usd(t, 70), "")
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeWithdrawal, txn.Type)
	})

	t.Run("rejects inconsistent deposit balances", func(t *testing.T) {
		_, err := NewTransaction(accountID, TransactionTypeDeposit, usd(t, 50), usd(t, 100), usd(t, 140), "")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, ErrCodeBalanceInconsistent, domainErr.Code)
		assert.Equal(t, "100.00", domainErr.Params["balance_before"])
		assert.Equal(t, "140.00", domainErr.Params["balance_after"])
	})

	t.Run("rejects deposit arithmetic applied to a withdrawal", func(t *testing.T) {
		_, err := NewTransaction(accountID, TransactionTypeWithdrawal, usd(t, 50), usd(t, 100), usd(t, 150), "")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, ErrCodeBalanceInconsistent, domainErr.Code)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []float64{0, -5} {
			_, err := NewTransaction(accountID, TransactionTypeDeposit, usd(t, amount), usd(t, 100), usd(t, 100+amount), "")

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, ErrCodeInvalidAmount, domainErr.Code)
		}
	})

	t.Run("rejects unknown transaction type", func(t *testing.T) {
		_, err := NewTransaction(accountID, TransactionType("TRANSFER"), usd(t, 10), usd(t, 100), usd(t, 110), "")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, ErrCodeInvalidTransactionType, domainErr.Code)
	})

	t.Run("rejects nil account id", func(t *testing.T) {
		_, err := NewTransaction(uuid.Nil, TransactionTypeDeposit, usd(t, 10), usd(t, 0), usd(t, 10), "")
		assert.Error(t, err)
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		ten, err := valueobject.NewMoneyFromFloat(10, valueobject.EUR)
		require.NoError(t, err)

		_, err = NewTransaction(accountID, TransactionTypeDeposit, ten, usd(t, 0), usd(t, 10), "")
		assert.Error(t, err)
	})
}

func TestReconstituteTransaction(t *testing.T) {
	entity := shared.NewBaseEntity()
	accountID := uuid.New()

	// inconsistent on purpose: reconstitution trusts stored state
	txn := ReconstituteTransaction(entity, accountID, TransactionTypeDeposit, usd(t, 50), usd(t, 100), usd(t, 999), "legacy")

	assert.Equal(t, entity.GetID(), txn.GetID())
	assert.True(t, txn.BalanceAfter.Equals(usd(t, 999)))
	assert.Equal(t, "legacy", txn.Description)
}
