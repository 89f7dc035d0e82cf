package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/orderhub/backend/internal/application/catalog"
)

// CatalogHandler serves the public product catalog
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers catalog routes on the API group.
// These endpoints are public.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/shops", h.ListShops)
	rg.GET("/products", h.SearchListings)
	rg.GET("/products/:id", h.GetListing)
}

// ListCategories returns all categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListShops returns shops accepting orders
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.catalog.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}

// SearchListings returns listings filtered by shop and category query params
func (h *CatalogHandler) SearchListings(c *gin.Context) {
	var input catalogapp.SearchListingsInput

	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "shop_id must be a UUID")
			return
		}
		input.ShopID = &id
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "category_id must be a UUID")
			return
		}
		input.CategoryID = &id
	}

	listings, err := h.catalog.SearchListings(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listings)
}

// GetListing returns one listing by id
func (h *CatalogHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	listing, err := h.catalog.GetListing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listing)
}
