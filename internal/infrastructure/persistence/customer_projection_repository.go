package persistence

import (
	"context"
	"errors"

	"github.com/banking/backend/internal/domain/customer"
	"github.com/banking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerProjectionRepository implements customer.ProjectionRepository
// using GORM
type GormCustomerProjectionRepository struct {
	db *gorm.DB
}

// NewGormCustomerProjectionRepository creates a new GormCustomerProjectionRepository
func NewGormCustomerProjectionRepository(db *gorm.DB) *GormCustomerProjectionRepository {
	return &GormCustomerProjectionRepository{db: db}
}

// Save upserts a projection row keyed by customer ID. Redelivered creation
// events overwrite the row instead of failing on the primary key.
func (r *GormCustomerProjectionRepository) Save(ctx context.Context, projection *customer.Projection) error {
	model := models.CustomerProjectionModelFromDomain(projection)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "status", "last_event_at", "updated_at",
			}),
		}).
		Create(model).Error
}

// FindByID finds a projection by the upstream customer ID
func (r *GormCustomerProjectionRepository) FindByID(ctx context.Context, customerID uuid.UUID) (*customer.Projection, error) {
	var model models.CustomerProjectionModel
	if err := r.db.WithContext(ctx).First(&model, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.NewCustomerNotFoundError(customerID)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByID reports whether the projection knows the customer
func (r *GormCustomerProjectionRepository) ExistsByID(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerProjectionModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
