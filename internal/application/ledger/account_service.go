package ledger

import (
	"context"
	"errors"

	"github.com/banking/backend/internal/domain/customer"
	"github.com/banking/backend/internal/domain/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AccountService handles account lifecycle operations
type AccountService struct {
	accountRepo ledger.AccountRepository
	customers   customer.ProjectionRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo ledger.AccountRepository, customers customer.ProjectionRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		customers:   customers,
	}
}

// Create opens a new account. The owning customer must be known to the
// local projection and active, and the account number must be unused.
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, shared.ErrInvalidInput.WithParam("field", "customer_id")
	}

	if err := s.validateCustomerActive(ctx, customerID); err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByAccountNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(
			ledger.ErrCodeDuplicateAccountNumber,
			"an account with this number already exists",
		).WithParam("account_number", req.AccountNumber)
	}

	currency := valueobject.DefaultCurrency
	if req.Currency != nil {
		currency = valueobject.Currency(*req.Currency)
	}
	initialBalance := valueobject.Zero(currency)
	if req.InitialBalance != "" {
		initialBalance, err = valueobject.NewMoneyFromString(req.InitialBalance, currency)
		if err != nil {
			return nil, err
		}
	}

	account, err := ledger.NewAccount(req.AccountNumber, customerID, ledger.AccountType(req.AccountType), initialBalance)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	account.ClearDomainEvents()

	response := s.toResponse(ctx, account)
	return &response, nil
}

// GetByID retrieves an account by its internal ID
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(ctx, account)
	return &response, nil
}

// GetByAccountNumber retrieves an account by its external number
func (s *AccountService) GetByAccountNumber(ctx context.Context, accountNumber string) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(ctx, account)
	return &response, nil
}

// ListByCustomer retrieves a customer's accounts
func (s *AccountService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]AccountResponse, int64, error) {
	page, err := s.accountRepo.FindByCustomerID(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]AccountResponse, 0, len(page.Items))
	for _, account := range page.Items {
		responses = append(responses, ToAccountResponse(account))
	}
	return responses, page.Total, nil
}

// List retrieves accounts with pagination
func (s *AccountService) List(ctx context.Context, filter shared.Filter) ([]AccountResponse, int64, error) {
	page, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]AccountResponse, 0, len(page.Items))
	for _, account := range page.Items {
		responses = append(responses, ToAccountResponse(account))
	}
	return responses, page.Total, nil
}

// ChangeStatus moves an account through its lifecycle
func (s *AccountService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := ledger.AccountStatus(req.Status)
	switch target {
	case ledger.AccountStatusClosed:
		err = account.Close()
	default:
		err = account.ChangeStatus(target)
	}
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	account.ClearDomainEvents()

	response := s.toResponse(ctx, account)
	return &response, nil
}

func (s *AccountService) validateCustomerActive(ctx context.Context, customerID uuid.UUID) error {
	projection, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == customer.ErrCodeCustomerNotFound {
			return customer.NewCustomerNotFoundError(customerID)
		}
		return err
	}
	if !projection.IsActive() {
		return customer.NewInactiveCustomerError(customerID)
	}
	return nil
}

func (s *AccountService) toResponse(ctx context.Context, account *ledger.Account) AccountResponse {
	response := ToAccountResponse(account)
	if projection, err := s.customers.FindByID(ctx, account.CustomerID); err == nil {
		response.CustomerName = projection.FullName
	} else {
		response.CustomerName = customer.UnknownCustomerName
	}
	return response
}
