package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownCustomerName is returned when a name lookup misses the projection
const UnknownCustomerName = "Unknown Customer"

// Status is the projected customer state. The projection only cares
// whether a customer may open accounts, so every upstream status other
// than ACTIVE collapses to INACTIVE.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// MapStatus collapses an upstream customer status string to the
// projection's two-state model
func MapStatus(raw string) Status {
	if raw == string(StatusActive) {
		return StatusActive
	}
	return StatusInactive
}

// BuildFullName joins first and last name, tolerating a blank last name
func BuildFullName(firstName, lastName string) string {
	if strings.TrimSpace(lastName) == "" {
		return firstName
	}
	return firstName + " " + lastName
}

// Projection is the local, eventually consistent read model of a customer
// owned by another service. It is keyed by the upstream customer ID and
// maintained solely from customer events.
type Projection struct {
	CustomerID  uuid.UUID
	FullName    string
	Status      Status
	LastEventAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProjection creates a projection row from a customer created event
func NewProjection(customerID uuid.UUID, firstName, lastName, rawStatus string, occurredAt time.Time) *Projection {
	now := time.Now().UTC()
	return &Projection{
		CustomerID:  customerID,
		FullName:    BuildFullName(firstName, lastName),
		Status:      MapStatus(rawStatus),
		LastEventAt: occurredAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsActive reports whether the projected customer may open accounts
func (p *Projection) IsActive() bool {
	return p.Status == StatusActive
}

// ApplyNameChange updates the projected name
func (p *Projection) ApplyNameChange(firstName, lastName string, occurredAt time.Time) {
	p.FullName = BuildFullName(firstName, lastName)
	p.LastEventAt = occurredAt
	p.UpdatedAt = time.Now().UTC()
}

// ApplyStatusChange updates the projected status
func (p *Projection) ApplyStatusChange(rawStatus string, occurredAt time.Time) {
	p.Status = MapStatus(rawStatus)
	p.LastEventAt = occurredAt
	p.UpdatedAt = time.Now().UTC()
}
