package customer

import (
	"context"
	"errors"
	"time"

	"github.com/banking/backend/internal/contracts"
	"github.com/banking/backend/internal/domain/customer"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectionService maintains the local customer read model from customer
// events and answers the gating reads the ledger needs. Handlers tolerate
// redelivery: creation is an upsert, and updates for customers the
// projection has never seen are logged and skipped rather than failed, so
// a poisoned ordering cannot wedge the consumer.
type ProjectionService struct {
	projections customer.ProjectionRepository
	logger      *zap.Logger
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(projections customer.ProjectionRepository, logger *zap.Logger) *ProjectionService {
	return &ProjectionService{
		projections: projections,
		logger:      logger,
	}
}

// HandleCustomerCreated upserts the projection row for a new customer
func (s *ProjectionService) HandleCustomerCreated(ctx context.Context, payload contracts.CustomerCreatedV1, occurredAt time.Time) error {
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return shared.ErrInvalidInput.WithParam("field", "customer_id").WithParam("value", payload.CustomerID)
	}

	projection := customer.NewProjection(customerID, payload.FirstName, payload.LastName, payload.Status, occurredAt)
	if err := s.projections.Save(ctx, projection); err != nil {
		return err
	}

	s.logger.Info("customer projection created",
		zap.String("customer_id", customerID.String()),
		zap.String("status", string(projection.Status)))
	return nil
}

// HandleCustomerUpdated applies a name change to an existing projection.
// An update for an unknown customer is skipped.
func (s *ProjectionService) HandleCustomerUpdated(ctx context.Context, payload contracts.CustomerUpdatedV1, occurredAt time.Time) error {
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return shared.ErrInvalidInput.WithParam("field", "customer_id").WithParam("value", payload.CustomerID)
	}

	projection, err := s.projections.FindByID(ctx, customerID)
	if err != nil {
		if isCustomerNotFound(err) {
			s.logger.Warn("customer update for unknown customer, skipping",
				zap.String("customer_id", customerID.String()))
			return nil
		}
		return err
	}

	projection.ApplyNameChange(payload.FirstName, payload.LastName, occurredAt)
	if err := s.projections.Save(ctx, projection); err != nil {
		return err
	}

	s.logger.Info("customer projection updated",
		zap.String("customer_id", customerID.String()))
	return nil
}

// HandleCustomerStatusChanged applies a status change to an existing
// projection. A change for an unknown customer is skipped.
func (s *ProjectionService) HandleCustomerStatusChanged(ctx context.Context, payload contracts.CustomerStatusChangedV1, occurredAt time.Time) error {
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return shared.ErrInvalidInput.WithParam("field", "customer_id").WithParam("value", payload.CustomerID)
	}

	projection, err := s.projections.FindByID(ctx, customerID)
	if err != nil {
		if isCustomerNotFound(err) {
			s.logger.Warn("customer status change for unknown customer, skipping",
				zap.String("customer_id", customerID.String()),
				zap.String("status", payload.NewStatus))
			return nil
		}
		return err
	}

	projection.ApplyStatusChange(payload.NewStatus, occurredAt)
	if err := s.projections.Save(ctx, projection); err != nil {
		return err
	}

	s.logger.Info("customer projection status changed",
		zap.String("customer_id", customerID.String()),
		zap.String("status", string(projection.Status)))
	return nil
}

// CustomerExists reports whether the projection knows the customer
func (s *ProjectionService) CustomerExists(ctx context.Context, customerID uuid.UUID) (bool, error) {
	return s.projections.ExistsByID(ctx, customerID)
}

// IsCustomerActive reports whether the projected customer is active.
// An unknown customer is not active.
func (s *ProjectionService) IsCustomerActive(ctx context.Context, customerID uuid.UUID) (bool, error) {
	projection, err := s.projections.FindByID(ctx, customerID)
	if err != nil {
		if isCustomerNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return projection.IsActive(), nil
}

// CustomerName returns the projected full name, or a placeholder when the
// projection has not caught up yet.
func (s *ProjectionService) CustomerName(ctx context.Context, customerID uuid.UUID) (string, error) {
	projection, err := s.projections.FindByID(ctx, customerID)
	if err != nil {
		if isCustomerNotFound(err) {
			return customer.UnknownCustomerName, nil
		}
		return "", err
	}
	return projection.FullName, nil
}

// GetProjection retrieves the raw projection row
func (s *ProjectionService) GetProjection(ctx context.Context, customerID uuid.UUID) (*customer.Projection, error) {
	return s.projections.FindByID(ctx, customerID)
}

func isCustomerNotFound(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == customer.ErrCodeCustomerNotFound
}
