package handler

import (
	ledgerapp "github.com/banking/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles money movement and statement HTTP requests
type TransactionHandler struct {
	BaseHandler
	transactions *ledgerapp.TransactionService
	statements   *ledgerapp.StatementService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions *ledgerapp.TransactionService, statements *ledgerapp.StatementService) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		statements:   statements,
	}
}

// RegisterRoutes registers movement and statement routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:id/deposits", h.Deposit)
		accounts.POST("/:id/withdrawals", h.Withdraw)
		accounts.GET("/:id/statement", h.GetStatement)
	}
	rg.GET("/transactions/:id", h.GetTransaction)
}

// Deposit credits an account
func (h *TransactionHandler) Deposit(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req ledgerapp.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	txn, err := h.transactions.Deposit(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, txn)
}

// Withdraw debits an account
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req ledgerapp.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	txn, err := h.transactions.Withdraw(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, txn)
}

// GetStatement retrieves a page of an account's movement history
func (h *TransactionHandler) GetStatement(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var filter ledgerapp.StatementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	statement, err := h.statements.GetStatement(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// GetTransaction retrieves a single movement record
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.statements.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, txn)
}
