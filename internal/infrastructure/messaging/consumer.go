package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/banking/backend/internal/contracts"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EnvelopeDispatcher routes a decoded envelope to its application handler
type EnvelopeDispatcher interface {
	RoutingKeys() []string
	Dispatch(ctx context.Context, routingKey string, envelope contracts.Envelope) error
}

// streamClient is the slice of the redis client the consumer needs
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

var _ streamClient = (redis.UniversalClient)(nil)

// RedisStreamConsumer reads envelopes from Redis streams with a consumer
// group. Delivery is at least once: every message is either dispatched (with
// retries and backoff) or parked on the dead-letter stream, and acknowledged
// in both cases. Redeliveries of already processed events are skipped by the
// IdempotentDispatcher the handler dispatcher is wrapped in.
type RedisStreamConsumer struct {
	client     streamClient
	cfg        config.ConsumerConfig
	dispatcher EnvelopeDispatcher
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRedisStreamConsumer creates a new stream consumer
func NewRedisStreamConsumer(
	client streamClient,
	cfg config.ConsumerConfig,
	dispatcher EnvelopeDispatcher,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *RedisStreamConsumer {
	return &RedisStreamConsumer{
		client:     client,
		cfg:        cfg,
		dispatcher: NewIdempotentDispatcher(dispatcher, idempotency, cfg.IdempotencyTTL, logger),
		logger:     logger,
	}
}

// Start creates the consumer groups and launches one read loop per stream
func (c *RedisStreamConsumer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	for _, routingKey := range c.dispatcher.RoutingKeys() {
		stream := contracts.StreamFor(routingKey)
		err := c.client.XGroupCreateMkStream(ctx, stream, c.cfg.Group, "0").Err()
		if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
			cancel()
			return fmt.Errorf("failed to create consumer group on %s: %w", stream, err)
		}

		c.wg.Add(1)
		go c.consumeLoop(ctx, routingKey)
	}

	c.logger.Info("stream consumer started",
		zap.String("group", c.cfg.Group),
		zap.String("consumer", c.cfg.Name),
		zap.Strings("routing_keys", c.dispatcher.RoutingKeys()),
	)
	return nil
}

// Stop cancels the read loops and waits for them to drain
func (c *RedisStreamConsumer) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("stream consumer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *RedisStreamConsumer) consumeLoop(ctx context.Context, routingKey string) {
	defer c.wg.Done()

	stream := contracts.StreamFor(routingKey)
	for {
		if ctx.Err() != nil {
			return
		}

		result, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.Name,
			Streams:  []string{stream, ">"},
			Count:    int64(c.cfg.PrefetchCount),
			Block:    c.cfg.BlockTimeout,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			c.logger.Error("failed to read from stream",
				zap.String("stream", stream),
				zap.Error(err),
			)
			if !sleepCtx(ctx, c.cfg.BlockTimeout) {
				return
			}
			continue
		}

		for _, streamResult := range result {
			for _, message := range streamResult.Messages {
				if err := c.processMessage(ctx, routingKey, message); err != nil {
					c.deadLetter(ctx, routingKey, message, err)
				}
				if err := c.client.XAck(ctx, stream, c.cfg.Group, message.ID).Err(); err != nil {
					c.logger.Error("failed to ack message",
						zap.String("stream", stream),
						zap.String("message_id", message.ID),
						zap.Error(err),
					)
				}
			}
		}
	}
}

// processMessage decodes and dispatches one message, retrying transient
// failures with exponential backoff. A nil return means the message is done;
// an error means the retry budget is exhausted and the message should be
// dead-lettered.
func (c *RedisStreamConsumer) processMessage(ctx context.Context, routingKey string, message redis.XMessage) error {
	envelope, err := decodeEnvelope(message)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetryAttempts; attempt++ {
		lastErr = c.dispatcher.Dispatch(ctx, routingKey, envelope)
		if lastErr == nil {
			return nil
		}

		c.logger.Warn("dispatch failed",
			zap.String("event_id", envelope.EventID),
			zap.String("routing_key", routingKey),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.cfg.MaxRetryAttempts),
			zap.Error(lastErr),
		)

		if attempt < c.cfg.MaxRetryAttempts {
			if !sleepCtx(ctx, backoffDelay(c.cfg, attempt)) {
				return lastErr
			}
		}
	}
	return lastErr
}

// deadLetter parks an undeliverable message on the routing key's DLQ stream
func (c *RedisStreamConsumer) deadLetter(ctx context.Context, routingKey string, message redis.XMessage, cause error) {
	dlq := contracts.DLQStreamFor(routingKey)

	values := map[string]interface{}{
		"error":     cause.Error(),
		"failed_at": time.Now().UTC().Format(time.RFC3339),
	}
	if raw, ok := message.Values[envelopeField]; ok {
		values[envelopeField] = raw
	}

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: dlq,
		Values: values,
	}).Err(); err != nil {
		c.logger.Error("failed to write to dead-letter stream",
			zap.String("stream", dlq),
			zap.String("message_id", message.ID),
			zap.Error(err),
		)
		return
	}

	c.logger.Warn("message moved to dead-letter stream",
		zap.String("stream", dlq),
		zap.String("message_id", message.ID),
		zap.String("routing_key", routingKey),
		zap.Error(cause),
	)
}

func decodeEnvelope(message redis.XMessage) (contracts.Envelope, error) {
	raw, ok := message.Values[envelopeField]
	if !ok {
		return contracts.Envelope{}, fmt.Errorf("message %s has no envelope field", message.ID)
	}

	data, ok := raw.(string)
	if !ok {
		return contracts.Envelope{}, fmt.Errorf("message %s envelope is not a string", message.ID)
	}

	var envelope contracts.Envelope
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		return contracts.Envelope{}, fmt.Errorf("malformed envelope in message %s: %w", message.ID, err)
	}
	return envelope, nil
}

// sleepCtx sleeps for d unless the context is cancelled first.
// Returns false when cancelled.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
