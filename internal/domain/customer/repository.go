package customer

import (
	"context"

	"github.com/google/uuid"
)

// ProjectionRepository is the persistence port for the customer read model.
// Save is an upsert keyed by customer ID so redelivered events stay
// idempotent at the storage layer.
type ProjectionRepository interface {
	Save(ctx context.Context, projection *Projection) error
	FindByID(ctx context.Context, customerID uuid.UUID) (*Projection, error)
	ExistsByID(ctx context.Context, customerID uuid.UUID) (bool, error)
}
