package messaging

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/banking/backend/internal/contracts"
	"github.com/banking/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DispatchMetrics tracks idempotent dispatch outcomes
type DispatchMetrics struct {
	EventsProcessed atomic.Int64
	EventsDuplicate atomic.Int64
	EventsFailed    atomic.Int64
}

// DispatchStats is a snapshot of dispatch metrics
type DispatchStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// Stats returns a snapshot of the current metrics
func (m *DispatchMetrics) Stats() DispatchStats {
	return DispatchStats{
		EventsProcessed: m.EventsProcessed.Load(),
		EventsDuplicate: m.EventsDuplicate.Load(),
		EventsFailed:    m.EventsFailed.Load(),
	}
}

// IdempotentDispatcher wraps an EnvelopeDispatcher so redelivered envelopes
// are acknowledged without reprocessing. The event id is recorded only after
// the inner dispatcher succeeds, so a failed envelope stays retryable on the
// next delivery.
type IdempotentDispatcher struct {
	inner   EnvelopeDispatcher
	store   shared.IdempotencyStore
	ttl     time.Duration
	logger  *zap.Logger
	metrics *DispatchMetrics
}

// NewIdempotentDispatcher creates a new idempotent dispatcher wrapper
func NewIdempotentDispatcher(
	inner EnvelopeDispatcher,
	store shared.IdempotencyStore,
	ttl time.Duration,
	logger *zap.Logger,
) *IdempotentDispatcher {
	return &IdempotentDispatcher{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: &DispatchMetrics{},
	}
}

// RoutingKeys returns the routing keys the inner dispatcher handles
func (d *IdempotentDispatcher) RoutingKeys() []string {
	return d.inner.RoutingKeys()
}

// Dispatch routes the envelope through the inner dispatcher unless its event
// id has already been processed
func (d *IdempotentDispatcher) Dispatch(ctx context.Context, routingKey string, envelope contracts.Envelope) error {
	processed, err := d.store.IsProcessed(ctx, envelope.EventID)
	if err != nil {
		// Better to risk duplicate processing than to drop events.
		d.logger.Warn("failed to check idempotency, processing anyway",
			zap.String("event_id", envelope.EventID),
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	} else if processed {
		d.metrics.EventsDuplicate.Add(1)
		d.logger.Debug("duplicate delivery skipped",
			zap.String("event_id", envelope.EventID),
			zap.String("routing_key", routingKey),
		)
		return nil
	}

	if err := d.inner.Dispatch(ctx, routingKey, envelope); err != nil {
		d.metrics.EventsFailed.Add(1)
		return err
	}

	if _, err := d.store.MarkProcessed(ctx, envelope.EventID, d.ttl); err != nil {
		d.logger.Warn("failed to record processed event",
			zap.String("event_id", envelope.EventID),
			zap.Error(err),
		)
	}
	d.metrics.EventsProcessed.Add(1)
	return nil
}

// Metrics returns the metrics for this dispatcher
func (d *IdempotentDispatcher) Metrics() *DispatchMetrics {
	return d.metrics
}

var _ EnvelopeDispatcher = (*IdempotentDispatcher)(nil)
