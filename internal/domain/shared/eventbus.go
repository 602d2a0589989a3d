package shared

import "context"

// EventPublisher publishes domain events
type EventPublisher interface {
	// Publish publishes one or more domain events
	Publish(ctx context.Context, events ...DomainEvent) error
}

// OutboxEventSaver saves domain events to the outbox table within a transaction.
// Repositories and application services use it to implement the transactional
// outbox pattern: events are persisted atomically with the aggregate state and
// published by a separate poller.
type OutboxEventSaver interface {
	// SaveEvents saves domain events to the outbox table within the current
	// transaction. The txProvider should be a *gorm.DB transaction.
	SaveEvents(ctx context.Context, txProvider interface{}, events ...DomainEvent) error
}
