package messaging

import (
	"encoding/json"
	"testing"

	"github.com/banking/backend/internal/contracts"
	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount, valueobject.USD)
	require.NoError(t, err)
	return m
}

func TestTranslateEvent_AccountCreated(t *testing.T) {
	account, err := ledger.NewAccount("1234567890", uuid.New(), ledger.AccountTypeSavings, money(t, "100.00"))
	require.NoError(t, err)
	event := account.GetDomainEvents()[0]

	envelope, routingKey, err := translateEvent(event)

	require.NoError(t, err)
	assert.Equal(t, contracts.RoutingKeyAccountCreated, routingKey)
	assert.Equal(t, event.EventID().String(), envelope.EventID)
	assert.Equal(t, "account.created", envelope.EventType)
	assert.Equal(t, 1, envelope.Version)

	var payload contracts.AccountCreatedV1
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, account.GetID().String(), payload.AccountID)
	assert.Equal(t, "1234567890", payload.AccountNumber)
	assert.Equal(t, account.CustomerID.String(), payload.CustomerID)
	assert.Equal(t, "SAVINGS", payload.AccountType)
	assert.Equal(t, "100.00", payload.InitialBalance)
	assert.Equal(t, "ACTIVE", payload.Status)
	assert.Equal(t, "USD", payload.Currency)
}

func TestTranslateEvent_TransactionPerformed(t *testing.T) {
	account, err := ledger.NewAccount("1234567890", uuid.New(), ledger.AccountTypeChecking, money(t, "100.00"))
	require.NoError(t, err)
	account.ClearDomainEvents()

	require.NoError(t, account.Deposit(money(t, "25.50")))
	txn, err := ledger.NewTransaction(
		account.GetID(),
		ledger.TransactionTypeDeposit,
		money(t, "25.50"),
		money(t, "100.00"),
		money(t, "125.50"),
		"payroll",
	)
	require.NoError(t, err)
	account.RegisterTransactionPerformed(txn)
	event := account.GetDomainEvents()[0]

	envelope, routingKey, err := translateEvent(event)

	require.NoError(t, err)
	assert.Equal(t, contracts.RoutingKeyTransactionCreated, routingKey)

	var payload contracts.TransactionPerformedV1
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, txn.GetID().String(), payload.TransactionID)
	assert.Equal(t, account.CustomerID.String(), payload.CustomerID)
	assert.Equal(t, "DEPOSIT", payload.Type)
	assert.Equal(t, "25.50", payload.Amount)
	assert.Equal(t, "100.00", payload.BalanceBefore)
	assert.Equal(t, "125.50", payload.BalanceAfter)
	assert.Equal(t, "payroll", payload.Reference)
}

func TestTranslateEvent_UnmappedType(t *testing.T) {
	event := &struct {
		shared.BaseDomainEvent
	}{shared.NewBaseDomainEvent("something.else", "Thing", uuid.New())}

	_, _, err := translateEvent(event)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no wire contract")
}
