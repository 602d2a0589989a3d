package customer

import (
	"fmt"

	"github.com/banking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeInactiveCustomer = "INACTIVE_CUSTOMER"
)

// NewCustomerNotFoundError reports a customer missing from the projection
func NewCustomerNotFoundError(customerID uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("customer not found with id %s", customerID),
	).WithParam("customer_id", customerID.String())
}

// NewInactiveCustomerError reports an operation gated on an active customer
func NewInactiveCustomerError(customerID uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(
		ErrCodeInactiveCustomer,
		fmt.Sprintf("customer %s is not active", customerID),
	).WithParam("customer_id", customerID.String())
}
