package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []AccountStatus{
		AccountStatusActive,
		AccountStatusInactive,
		AccountStatusSuspended,
		AccountStatusClosed,
	}

	t.Run("closed is terminal", func(t *testing.T) {
		for _, to := range statuses {
			assert.False(t, CanTransition(AccountStatusClosed, to), "CLOSED -> %s", to)
		}
	})

	t.Run("self transitions are rejected", func(t *testing.T) {
		for _, s := range statuses {
			assert.False(t, CanTransition(s, s), "%s -> %s", s, s)
		}
	})

	t.Run("open states reach every other state", func(t *testing.T) {
		for _, from := range []AccountStatus{AccountStatusActive, AccountStatusInactive, AccountStatusSuspended} {
			for _, to := range statuses {
				if from == to {
					continue
				}
				assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown statuses never transition", func(t *testing.T) {
		assert.False(t, CanTransition(AccountStatus("FROZEN"), AccountStatusActive))
		assert.False(t, CanTransition(AccountStatusActive, AccountStatus("FROZEN")))
	})
}

func TestAccountStatusIsValid(t *testing.T) {
	for _, s := range []AccountStatus{AccountStatusActive, AccountStatusInactive, AccountStatusSuspended, AccountStatusClosed} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, AccountStatus("").IsValid())
	assert.False(t, AccountStatus("FROZEN").IsValid())
}
