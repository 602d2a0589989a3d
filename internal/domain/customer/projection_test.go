package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", BuildFullName("Ada", "Lovelace"))
	assert.Equal(t, "Ada", BuildFullName("Ada", ""))
	assert.Equal(t, "Ada", BuildFullName("Ada", "   "))
}

func TestMapStatus(t *testing.T) {
	assert.Equal(t, StatusActive, MapStatus("ACTIVE"))
	for _, raw := range []string{"INACTIVE", "SUSPENDED", "BLOCKED", "active", ""} {
		assert.Equal(t, StatusInactive, MapStatus(raw), "raw %q", raw)
	}
}

func TestProjectionLifecycle(t *testing.T) {
	customerID := uuid.New()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	p := NewProjection(customerID, "Ada", "Lovelace", "ACTIVE", created)
	assert.Equal(t, customerID, p.CustomerID)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.True(t, p.IsActive())
	assert.Equal(t, created, p.LastEventAt)

	renamed := created.Add(time.Minute)
	p.ApplyNameChange("Ada", "King", renamed)
	assert.Equal(t, "Ada King", p.FullName)
	assert.Equal(t, renamed, p.LastEventAt)

	blocked := renamed.Add(time.Minute)
	p.ApplyStatusChange("BLOCKED", blocked)
	assert.False(t, p.IsActive())
	assert.Equal(t, StatusInactive, p.Status)
	assert.Equal(t, blocked, p.LastEventAt)
}
