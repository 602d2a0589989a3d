package event

import (
	"github.com/banking/backend/internal/domain/ledger"
)

// RegisterAllEvents registers all domain event types with the serializer.
// This is required for the OutboxProcessor to deserialize events from the
// outbox table before publishing them to the broker.
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(ledger.EventTypeAccountCreated, &ledger.AccountCreatedEvent{})
	serializer.Register(ledger.EventTypeTransactionPerformed, &ledger.TransactionPerformedEvent{})
}
