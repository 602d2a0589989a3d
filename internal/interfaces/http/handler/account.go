package handler

import (
	ledgerapp "github.com/banking/backend/internal/application/ledger"
	"github.com/banking/backend/internal/domain/shared"
	"github.com/banking/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles account lifecycle HTTP requests
type AccountHandler struct {
	BaseHandler
	accounts *ledgerapp.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *ledgerapp.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.GetByID)
		accounts.GET("/number/:number", h.GetByAccountNumber)
		accounts.PATCH("/:id/status", h.ChangeStatus)
	}
}

// Create opens a new account
func (h *AccountHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetByID retrieves an account by its ID
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// GetByAccountNumber retrieves an account by its account number
func (h *AccountHandler) GetByAccountNumber(c *gin.Context) {
	account, err := h.accounts.GetByAccountNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// List retrieves accounts, optionally scoped to one customer
func (h *AccountHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	var (
		accounts []ledgerapp.AccountResponse
		total    int64
		err      error
	)

	if customerParam := c.Query("customer_id"); customerParam != "" {
		customerID, parseErr := uuid.Parse(customerParam)
		if parseErr != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		accounts, total, err = h.accounts.ListByCustomer(c.Request.Context(), customerID, filter)
	} else {
		accounts, total, err = h.accounts.List(c.Request.Context(), filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts, total, filter.Page, filter.PageSize)
}

// ChangeStatus moves an account through its lifecycle
func (h *AccountHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req ledgerapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.accounts.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}
