package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/banking/backend/internal/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler records projection calls for assertions
type recordingHandler struct {
	created       []contracts.CustomerCreatedV1
	updated       []contracts.CustomerUpdatedV1
	statusChanged []contracts.CustomerStatusChangedV1
	err           error
}

func (h *recordingHandler) HandleCustomerCreated(ctx context.Context, payload contracts.CustomerCreatedV1, occurredAt time.Time) error {
	h.created = append(h.created, payload)
	return h.err
}

func (h *recordingHandler) HandleCustomerUpdated(ctx context.Context, payload contracts.CustomerUpdatedV1, occurredAt time.Time) error {
	h.updated = append(h.updated, payload)
	return h.err
}

func (h *recordingHandler) HandleCustomerStatusChanged(ctx context.Context, payload contracts.CustomerStatusChangedV1, occurredAt time.Time) error {
	h.statusChanged = append(h.statusChanged, payload)
	return h.err
}

func envelopeWith(t *testing.T, eventType string, payload interface{}) contracts.Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return contracts.Envelope{
		EventID:    "evt-1",
		EventType:  eventType,
		Version:    1,
		OccurredAt: time.Now(),
		Payload:    raw,
	}
}

func TestCustomerEventDispatcher_Dispatch(t *testing.T) {
	t.Run("routes customer created", func(t *testing.T) {
		handler := &recordingHandler{}
		dispatcher := NewCustomerEventDispatcher(handler)

		payload := contracts.CustomerCreatedV1{
			CustomerID: "0d1f7a42-9f5e-4f5b-8498-584f1be2f661",
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Status:     "ACTIVE",
		}
		env := envelopeWith(t, contracts.RoutingKeyCustomerCreated, payload)

		err := dispatcher.Dispatch(context.Background(), contracts.RoutingKeyCustomerCreated, env)

		require.NoError(t, err)
		require.Len(t, handler.created, 1)
		assert.Equal(t, payload, handler.created[0])
	})

	t.Run("routes customer updated", func(t *testing.T) {
		handler := &recordingHandler{}
		dispatcher := NewCustomerEventDispatcher(handler)

		payload := contracts.CustomerUpdatedV1{
			CustomerID: "0d1f7a42-9f5e-4f5b-8498-584f1be2f661",
			FirstName:  "Ada",
			LastName:   "King",
		}
		env := envelopeWith(t, contracts.RoutingKeyCustomerUpdated, payload)

		err := dispatcher.Dispatch(context.Background(), contracts.RoutingKeyCustomerUpdated, env)

		require.NoError(t, err)
		require.Len(t, handler.updated, 1)
		assert.Equal(t, "King", handler.updated[0].LastName)
	})

	t.Run("routes customer status changed", func(t *testing.T) {
		handler := &recordingHandler{}
		dispatcher := NewCustomerEventDispatcher(handler)

		payload := contracts.CustomerStatusChangedV1{
			CustomerID: "0d1f7a42-9f5e-4f5b-8498-584f1be2f661",
			NewStatus:  "BLOCKED",
		}
		env := envelopeWith(t, contracts.RoutingKeyCustomerStatusChanged, payload)

		err := dispatcher.Dispatch(context.Background(), contracts.RoutingKeyCustomerStatusChanged, env)

		require.NoError(t, err)
		require.Len(t, handler.statusChanged, 1)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		handler := &recordingHandler{}
		dispatcher := NewCustomerEventDispatcher(handler)

		env := contracts.Envelope{
			EventID:   "evt-2",
			EventType: contracts.RoutingKeyCustomerCreated,
			Payload:   json.RawMessage(`"not an object"`),
		}

		err := dispatcher.Dispatch(context.Background(), contracts.RoutingKeyCustomerCreated, env)

		assert.Error(t, err)
		assert.Empty(t, handler.created)
	})

	t.Run("rejects unknown routing key", func(t *testing.T) {
		dispatcher := NewCustomerEventDispatcher(&recordingHandler{})

		err := dispatcher.Dispatch(context.Background(), "customer.deleted", contracts.Envelope{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no handler")
	})

	t.Run("propagates handler errors", func(t *testing.T) {
		handler := &recordingHandler{err: errors.New("db down")}
		dispatcher := NewCustomerEventDispatcher(handler)

		env := envelopeWith(t, contracts.RoutingKeyCustomerCreated, contracts.CustomerCreatedV1{})

		err := dispatcher.Dispatch(context.Background(), contracts.RoutingKeyCustomerCreated, env)

		assert.Error(t, err)
	})
}

func TestCustomerEventDispatcher_RoutingKeys(t *testing.T) {
	dispatcher := NewCustomerEventDispatcher(&recordingHandler{})

	assert.Equal(t, []string{
		contracts.RoutingKeyCustomerCreated,
		contracts.RoutingKeyCustomerUpdated,
		contracts.RoutingKeyCustomerStatusChanged,
	}, dispatcher.RoutingKeys())
}
