package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/orderhub/backend/internal/application/trade"
)

// BasketHandler serves the authenticated user's basket
type BasketHandler struct {
	BaseHandler
	baskets *tradeapp.BasketService
	auth    gin.HandlerFunc
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(baskets *tradeapp.BasketService, auth gin.HandlerFunc) *BasketHandler {
	return &BasketHandler{baskets: baskets, auth: auth}
}

// RegisterRoutes registers basket routes on the API group
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket", h.auth)
	{
		basket.GET("", h.GetBasket)
		basket.POST("/items", h.AddItems)
		basket.PUT("/items", h.UpdateItems)
		basket.DELETE("/items", h.DeleteItems)
	}
}

// GetBasket returns the user's basket, creating an empty one when absent
func (h *BasketHandler) GetBasket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	basket, err := h.baskets.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

type addItemsRequest struct {
	Items []struct {
		ListingID uuid.UUID `json:"listing_id" binding:"required"`
		Quantity  int       `json:"quantity" binding:"required,gt=0"`
	} `json:"items" binding:"required,min=1,dive"`
}

// AddItems adds listings to the basket as one all-or-nothing batch
func (h *BasketHandler) AddItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	inputs := make([]tradeapp.AddItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, tradeapp.AddItemInput{
			ListingID: item.ListingID,
			Quantity:  item.Quantity,
		})
	}

	basket, err := h.baskets.AddItems(c.Request.Context(), userID, inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

type updateItemsRequest struct {
	Items []struct {
		ID       uuid.UUID `json:"id" binding:"required"`
		Quantity int       `json:"quantity" binding:"required"`
	} `json:"items" binding:"required,min=1,dive"`
}

// UpdateItems applies quantity changes to basket line items
func (h *BasketHandler) UpdateItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req updateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	inputs := make([]tradeapp.UpdateItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, tradeapp.UpdateItemInput{
			ItemID:   item.ID,
			Quantity: item.Quantity,
		})
	}

	result, err := h.baskets.UpdateItems(c.Request.Context(), userID, inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

type deleteItemsRequest struct {
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// DeleteItems removes line items from the basket
func (h *BasketHandler) DeleteItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req deleteItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.baskets.DeleteItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
