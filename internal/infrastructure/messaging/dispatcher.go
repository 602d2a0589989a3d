package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/banking/backend/internal/contracts"
)

// CustomerProjectionHandler is the application surface the dispatcher feeds.
// It matches the customer ProjectionService.
type CustomerProjectionHandler interface {
	HandleCustomerCreated(ctx context.Context, payload contracts.CustomerCreatedV1, occurredAt time.Time) error
	HandleCustomerUpdated(ctx context.Context, payload contracts.CustomerUpdatedV1, occurredAt time.Time) error
	HandleCustomerStatusChanged(ctx context.Context, payload contracts.CustomerStatusChangedV1, occurredAt time.Time) error
}

// CustomerEventDispatcher decodes customer envelopes and routes them to the
// projection handler
type CustomerEventDispatcher struct {
	handler CustomerProjectionHandler
}

// NewCustomerEventDispatcher creates a new dispatcher
func NewCustomerEventDispatcher(handler CustomerProjectionHandler) *CustomerEventDispatcher {
	return &CustomerEventDispatcher{handler: handler}
}

// RoutingKeys returns the routing keys this dispatcher consumes
func (d *CustomerEventDispatcher) RoutingKeys() []string {
	return []string{
		contracts.RoutingKeyCustomerCreated,
		contracts.RoutingKeyCustomerUpdated,
		contracts.RoutingKeyCustomerStatusChanged,
	}
}

// Dispatch routes one decoded envelope to the matching handler
func (d *CustomerEventDispatcher) Dispatch(ctx context.Context, routingKey string, envelope contracts.Envelope) error {
	switch routingKey {
	case contracts.RoutingKeyCustomerCreated:
		var payload contracts.CustomerCreatedV1
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return fmt.Errorf("malformed %s payload: %w", routingKey, err)
		}
		return d.handler.HandleCustomerCreated(ctx, payload, envelope.OccurredAt)

	case contracts.RoutingKeyCustomerUpdated:
		var payload contracts.CustomerUpdatedV1
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return fmt.Errorf("malformed %s payload: %w", routingKey, err)
		}
		return d.handler.HandleCustomerUpdated(ctx, payload, envelope.OccurredAt)

	case contracts.RoutingKeyCustomerStatusChanged:
		var payload contracts.CustomerStatusChangedV1
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return fmt.Errorf("malformed %s payload: %w", routingKey, err)
		}
		return d.handler.HandleCustomerStatusChanged(ctx, payload, envelope.OccurredAt)

	default:
		return fmt.Errorf("no handler for routing key %s", routingKey)
	}
}
