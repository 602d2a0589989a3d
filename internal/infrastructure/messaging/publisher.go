package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/banking/backend/internal/contracts"
	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// envelopeField is the stream entry field carrying the JSON envelope
const envelopeField = "envelope"

// RedisStreamPublisher publishes domain events to Redis streams as versioned
// wire contracts. Each routing key gets its own stream so consumers can
// subscribe per event kind.
type RedisStreamPublisher struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisStreamPublisher creates a new stream publisher
func NewRedisStreamPublisher(client redis.UniversalClient, logger *zap.Logger) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		logger: logger,
	}
}

// Publish translates domain events to wire contracts and appends them to
// their streams
func (p *RedisStreamPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		envelope, routingKey, err := translateEvent(event)
		if err != nil {
			return err
		}

		data, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope for %s: %w", event.EventType(), err)
		}

		stream := contracts.StreamFor(routingKey)
		if err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]interface{}{envelopeField: data},
		}).Err(); err != nil {
			return fmt.Errorf("failed to append to stream %s: %w", stream, err)
		}

		p.logger.Debug("event published to stream",
			zap.String("stream", stream),
			zap.String("event_id", envelope.EventID),
			zap.String("event_type", envelope.EventType),
		)
	}
	return nil
}

// translateEvent maps a domain event to its wire contract and routing key
func translateEvent(event shared.DomainEvent) (contracts.Envelope, string, error) {
	var (
		payload    interface{}
		routingKey string
	)

	switch e := event.(type) {
	case *ledger.AccountCreatedEvent:
		routingKey = contracts.RoutingKeyAccountCreated
		payload = contracts.AccountCreatedV1{
			AccountID:      e.AggregateID().String(),
			AccountNumber:  e.AccountNumber,
			CustomerID:     e.CustomerID.String(),
			AccountType:    string(e.AccountType),
			InitialBalance: e.InitialBalance.StringFixed(),
			Status:         string(e.Status),
			Currency:       e.Currency,
		}
	case *ledger.TransactionPerformedEvent:
		routingKey = contracts.RoutingKeyTransactionCreated
		payload = contracts.TransactionPerformedV1{
			TransactionID: e.TransactionID.String(),
			AccountID:     e.AggregateID().String(),
			AccountNumber: e.AccountNumber,
			CustomerID:    e.CustomerID.String(),
			Type:          string(e.Type),
			Amount:        e.Amount.StringFixed(),
			BalanceBefore: e.BalanceBefore.StringFixed(),
			BalanceAfter:  e.BalanceAfter.StringFixed(),
			Currency:      e.Currency,
			Reference:     e.Description,
		}
	default:
		return contracts.Envelope{}, "", fmt.Errorf("no wire contract for event type %s", event.EventType())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return contracts.Envelope{}, "", fmt.Errorf("failed to marshal payload for %s: %w", event.EventType(), err)
	}

	version := 1
	if versioned, ok := event.(shared.VersionedEvent); ok {
		version = versioned.SchemaVersion()
	}

	return contracts.Envelope{
		EventID:    event.EventID().String(),
		EventType:  event.EventType(),
		Version:    version,
		OccurredAt: event.OccurredAt(),
		Payload:    raw,
	}, routingKey, nil
}

var _ shared.EventPublisher = (*RedisStreamPublisher)(nil)
