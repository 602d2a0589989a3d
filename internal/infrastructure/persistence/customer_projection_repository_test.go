package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/banking/backend/internal/domain/customer"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockProjectionRepository(t *testing.T) (*GormCustomerProjectionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCustomerProjectionRepository(gormDB), mock, mockDB
}

func TestGormCustomerProjectionRepository_Save(t *testing.T) {
	t.Run("upserts on conflicting customer id", func(t *testing.T) {
		repo, mock, mockDB := newMockProjectionRepository(t)
		defer mockDB.Close()

		projection := customer.NewProjection(uuid.New(), "Ada", "Lovelace", "ACTIVE", time.Now())

		mock.ExpectExec(`INSERT INTO "customer_projections" .* ON CONFLICT \("customer_id"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), projection)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerProjectionRepository_FindByID(t *testing.T) {
	t.Run("finds existing projection", func(t *testing.T) {
		repo, mock, mockDB := newMockProjectionRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"customer_id", "full_name", "status", "last_event_at", "created_at", "updated_at"}).
			AddRow(customerID, "Ada Lovelace", "ACTIVE", now, now, now)

		mock.ExpectQuery(`SELECT \* FROM "customer_projections" WHERE customer_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		projection, err := repo.FindByID(context.Background(), customerID)

		assert.NoError(t, err)
		require.NotNil(t, projection)
		assert.Equal(t, "Ada Lovelace", projection.FullName)
		assert.True(t, projection.IsActive())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns domain error for unknown customer", func(t *testing.T) {
		repo, mock, mockDB := newMockProjectionRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customer_projections" WHERE customer_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		projection, err := repo.FindByID(context.Background(), customerID)

		assert.Error(t, err)
		assert.Nil(t, projection)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, customer.ErrCodeCustomerNotFound, domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerProjectionRepository_ExistsByID(t *testing.T) {
	t.Run("reports presence", func(t *testing.T) {
		repo, mock, mockDB := newMockProjectionRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer_projections" WHERE customer_id = \$1`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByID(context.Background(), customerID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
