// Package contracts holds the versioned wire payloads exchanged with other
// services over the event streams. These types are the integration surface:
// changing a field here is a cross-service schema change, so additions get a
// new version suffix instead of mutating an existing payload.
package contracts

import (
	"encoding/json"
	"time"
)

// Routing keys. Outbound keys are published by this service; inbound keys
// originate from the customer service.
const (
	RoutingKeyAccountCreated        = "account.created"
	RoutingKeyTransactionCreated    = "transaction.created"
	RoutingKeyCustomerCreated       = "customer.created"
	RoutingKeyCustomerUpdated       = "customer.updated"
	RoutingKeyCustomerStatusChanged = "customer.status.changed"
)

const streamPrefix = "banking.events."

// StreamFor maps a routing key to its stream name
func StreamFor(routingKey string) string {
	return streamPrefix + routingKey
}

// DLQStreamFor maps a routing key to its dead-letter stream name
func DLQStreamFor(routingKey string) string {
	return StreamFor(routingKey) + ".dlq"
}

// Envelope frames every payload on the wire with delivery metadata.
// EventID is the consumer-side idempotency key.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	Version    int             `json:"version"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// AccountCreatedV1 announces a newly opened account
type AccountCreatedV1 struct {
	AccountID      string `json:"account_id"`
	AccountNumber  string `json:"account_number"`
	CustomerID     string `json:"customer_id"`
	AccountType    string `json:"account_type"`
	InitialBalance string `json:"initial_balance"`
	Status         string `json:"status"`
	Currency       string `json:"currency"`
}

// TransactionPerformedV1 announces a recorded balance movement
type TransactionPerformedV1 struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	AccountNumber string `json:"account_number"`
	CustomerID    string `json:"customer_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	BalanceBefore string `json:"balance_before"`
	BalanceAfter  string `json:"balance_after"`
	Currency      string `json:"currency"`
	Reference     string `json:"reference,omitempty"`
}

// CustomerCreatedV1 is consumed from the customer service when a customer
// is registered. Only the naming and status fields feed the projection;
// the rest ride along for forward compatibility with the producer.
type CustomerCreatedV1 struct {
	CustomerID     string `json:"customer_id"`
	IdentityNumber string `json:"identity_number,omitempty"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Gender         string `json:"gender,omitempty"`
	BirthDate      string `json:"birth_date,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Status         string `json:"status"`
}

// CustomerUpdatedV1 is consumed when a customer's personal data changes
type CustomerUpdatedV1 struct {
	CustomerID     string `json:"customer_id"`
	IdentityNumber string `json:"identity_number,omitempty"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// CustomerStatusChangedV1 is consumed when a customer's lifecycle status
// changes
type CustomerStatusChangedV1 struct {
	CustomerID     string `json:"customer_id"`
	IdentityNumber string `json:"identity_number,omitempty"`
	NewStatus      string `json:"new_status"`
	Reason         string `json:"reason,omitempty"`
}
