package messaging

import (
	"time"

	"github.com/banking/backend/internal/infrastructure/config"
)

// backoffDelay returns the wait before retry number attempt (1-based).
// The delay grows by the configured multiplier and is capped at MaxBackoff.
func backoffDelay(cfg config.ConsumerConfig, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := float64(cfg.InitialBackoff)
	for i := 1; i < attempt; i++ {
		delay *= cfg.BackoffMultiplier
		if time.Duration(delay) >= cfg.MaxBackoff {
			return cfg.MaxBackoff
		}
	}

	d := time.Duration(delay)
	if d > cfg.MaxBackoff {
		return cfg.MaxBackoff
	}
	return d
}
