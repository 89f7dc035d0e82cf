package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
)

// CatalogService serves the public product catalog
type CatalogService struct {
	categoryRepo catalog.CategoryRepository
	shopRepo     catalog.ShopRepository
	listingRepo  catalog.ListingRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo catalog.CategoryRepository,
	shopRepo catalog.ShopRepository,
	listingRepo catalog.ListingRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		shopRepo:     shopRepo,
		listingRepo:  listingRepo,
		logger:       logger,
	}
}

// ListCategories returns all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, ToCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

// ListShops returns shops currently accepting orders
func (s *CatalogService) ListShops(ctx context.Context) ([]ShopDTO, error) {
	shops, err := s.shopRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ShopDTO, 0, len(shops))
	for i := range shops {
		dtos = append(dtos, ToShopDTO(&shops[i]))
	}
	return dtos, nil
}

// SearchListings returns listings of active shops matching the filter
func (s *CatalogService) SearchListings(ctx context.Context, input SearchListingsInput) ([]ListingDTO, error) {
	listings, err := s.listingRepo.Search(ctx, catalog.ListingFilter{
		ShopID:     input.ShopID,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]ListingDTO, 0, len(listings))
	for i := range listings {
		dtos = append(dtos, ToListingDTO(&listings[i]))
	}
	return dtos, nil
}

// GetListing returns one listing with its associations
func (s *CatalogService) GetListing(ctx context.Context, id uuid.UUID) (*ListingDTO, error) {
	info, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToListingDTO(info)
	return &dto, nil
}
