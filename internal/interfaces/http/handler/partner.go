package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	importerapp "github.com/orderhub/backend/internal/application/importer"
	partnerapp "github.com/orderhub/backend/internal/application/partner"
	tradeapp "github.com/orderhub/backend/internal/application/trade"
	"github.com/orderhub/backend/internal/domain/trade"
)

// PartnerHandler serves supplier endpoints: price-list imports, shop state
// and incoming orders
type PartnerHandler struct {
	BaseHandler
	imports  *importerapp.ImportService
	shops    *partnerapp.ShopService
	orders   *tradeapp.OrderService
	auth     gin.HandlerFunc
	shopOnly gin.HandlerFunc
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(
	imports *importerapp.ImportService,
	shops *partnerapp.ShopService,
	orders *tradeapp.OrderService,
	auth gin.HandlerFunc,
	shopOnly gin.HandlerFunc,
) *PartnerHandler {
	return &PartnerHandler{
		imports:  imports,
		shops:    shops,
		orders:   orders,
		auth:     auth,
		shopOnly: shopOnly,
	}
}

// RegisterRoutes registers partner routes on the API group.
// All routes require an authenticated shop account.
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner", h.auth, h.shopOnly)
	{
		partner.POST("/update", h.StartImport)
		partner.GET("/update/:id", h.GetImport)
		partner.GET("/update", h.ListImports)
		partner.GET("/state", h.GetState)
		partner.POST("/state", h.SetState)
		partner.GET("/orders", h.ListOrders)
		partner.POST("/orders/:id/status", h.UpdateOrderStatus)
	}
}

type startImportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// StartImport schedules an asynchronous price-list import
func (h *PartnerHandler) StartImport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req startImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	run, err := h.imports.StartImport(c.Request.Context(), userID, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, run)
}

// GetImport returns one import run
func (h *PartnerHandler) GetImport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	importID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	run, err := h.imports.GetImport(c.Request.Context(), userID, importID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, run)
}

// ListImports returns the supplier's import runs, newest first
func (h *PartnerHandler) ListImports(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	runs, err := h.imports.ListImports(c.Request.Context(), userID, 0)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, runs)
}

// GetState returns whether the supplier's shop accepts orders
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	state, err := h.shops.GetState(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

type setStateRequest struct {
	State *bool `json:"state" binding:"required"`
}

// SetState toggles whether the supplier's shop accepts orders
func (h *PartnerHandler) SetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req setStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.shops.SetState(c.Request.Context(), userID, *req.State)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// ListOrders returns placed orders containing the supplier's listings
func (h *PartnerHandler) ListOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	orders, err := h.orders.ListPartnerOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves one of the supplier's orders to a new state
func (h *PartnerHandler) UpdateOrderStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.UpdatePartnerOrderStatus(c.Request.Context(), userID, orderID, trade.OrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
