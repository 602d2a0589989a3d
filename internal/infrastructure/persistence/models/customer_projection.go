package models

import (
	"time"

	"github.com/banking/backend/internal/domain/customer"
	"github.com/google/uuid"
)

// CustomerProjectionModel is the persistence model for the customer read
// model. It is keyed by the upstream customer ID, not a local surrogate.
type CustomerProjectionModel struct {
	CustomerID  uuid.UUID `gorm:"type:uuid;primary_key"`
	FullName    string    `gorm:"type:varchar(200);not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	LastEventAt time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerProjectionModel) TableName() string {
	return "customer_projections"
}

// ToDomain converts the persistence model to the domain read model
func (m *CustomerProjectionModel) ToDomain() *customer.Projection {
	return &customer.Projection{
		CustomerID:  m.CustomerID,
		FullName:    m.FullName,
		Status:      customer.Status(m.Status),
		LastEventAt: m.LastEventAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CustomerProjectionModelFromDomain builds the persistence model from the
// domain read model
func CustomerProjectionModelFromDomain(p *customer.Projection) *CustomerProjectionModel {
	return &CustomerProjectionModel{
		CustomerID:  p.CustomerID,
		FullName:    p.FullName,
		Status:      string(p.Status),
		LastEventAt: p.LastEventAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
