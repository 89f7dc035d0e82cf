package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error

	// FindByID finds a shop by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByUserID finds the shop owned by a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Shop, error)

	// FindAllActive returns shops currently accepting orders
	FindAllActive(ctx context.Context) ([]Shop, error)

	// UpdateState sets the accepting-orders flag for a user's shop,
	// returning false when the user owns no shop
	UpdateState(ctx context.Context, userID uuid.UUID, state bool) (bool, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindAll returns all categories
	FindAll(ctx context.Context) ([]Category, error)

	// FindByExternalID finds a category by its price-list identifier
	FindByExternalID(ctx context.Context, externalID int) (*Category, error)
}

// ListingFilter narrows listing searches
type ListingFilter struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// ListingRepository defines the interface for product listing reads
type ListingRepository interface {
	// FindByID finds a listing with its product, shop and parameters
	FindByID(ctx context.Context, id uuid.UUID) (*ProductInfo, error)

	// Search returns listings of shops accepting orders, with product,
	// category and parameter associations loaded
	Search(ctx context.Context, filter ListingFilter) ([]ProductInfo, error)
}

// ImportStats summarizes one price-list import run
type ImportStats struct {
	ShopID            uuid.UUID
	CategoriesCreated int
	ProductsCreated   int
	ListingsCreated   int
}

// ImportRepository executes the transactional wholesale replacement of a
// shop's catalog from a parsed price list
type ImportRepository interface {
	// ReplaceShopCatalog upserts the shop and categories, purges the shop's
	// existing listings and inserts the new ones, all in one transaction
	ReplaceShopCatalog(ctx context.Context, ownerUserID uuid.UUID, doc *PriceList) (*ImportStats, error)
}
