package event

import (
	"time"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// testEvent is a minimal domain event used as a fixture across the
// serializer, publisher, and processor tests.
type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.BaseDomainEvent{
			ID:        uuid.New(),
			Type:      eventType,
			Timestamp: time.Now(),
			AggID:     uuid.New(),
			AggType:   "Account",
		},
	}
}
