package handler

import (
	"time"

	customerapp "github.com/banking/backend/internal/application/customer"
	"github.com/banking/backend/internal/domain/customer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler exposes the customer projection read model
type CustomerHandler struct {
	BaseHandler
	projections *customerapp.ProjectionService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(projections *customerapp.ProjectionService) *CustomerHandler {
	return &CustomerHandler{projections: projections}
}

// RegisterRoutes registers customer projection routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/:id", h.GetByID)
	}
}

// CustomerProjectionResponse is the outward view of a customer projection
type CustomerProjectionResponse struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	FullName    string    `json:"full_name"`
	Status      string    `json:"status"`
	Active      bool      `json:"active"`
	LastEventAt time.Time `json:"last_event_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCustomerProjectionResponse(p *customer.Projection) CustomerProjectionResponse {
	return CustomerProjectionResponse{
		CustomerID:  p.CustomerID,
		FullName:    p.FullName,
		Status:      string(p.Status),
		Active:      p.IsActive(),
		LastEventAt: p.LastEventAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// GetByID retrieves the locally projected view of a customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	projection, err := h.projections.GetProjection(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCustomerProjectionResponse(projection))
}
