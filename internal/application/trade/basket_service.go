package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/domain/trade"
)

// BasketService manages a user's open basket
type BasketService struct {
	orderRepo   trade.OrderRepository
	listingRepo catalog.ListingRepository
	logger      *zap.Logger
}

// NewBasketService creates a new basket service
func NewBasketService(
	orderRepo trade.OrderRepository,
	listingRepo catalog.ListingRepository,
	logger *zap.Logger,
) *BasketService {
	return &BasketService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// GetBasket returns the user's basket with items loaded, creating an empty
// basket when none exists
func (s *BasketService) GetBasket(ctx context.Context, userID uuid.UUID) (*OrderDTO, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err == shared.ErrNotFound {
		basket, err = s.orderRepo.GetOrCreateBasket(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	dto := ToOrderDTO(basket)
	return &dto, nil
}

// AddItems adds listings to the user's basket. The whole batch is rejected
// when any listing is unknown, inactive or already in the basket.
func (s *BasketService) AddItems(ctx context.Context, userID uuid.UUID, inputs []AddItemInput) (*OrderDTO, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "No items to add")
	}

	basket, err := s.orderRepo.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]trade.OrderItem, 0, len(inputs))
	for _, input := range inputs {
		listing, err := s.listingRepo.FindByID(ctx, input.ListingID)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("UNKNOWN_LISTING", fmt.Sprintf("Listing %s does not exist", input.ListingID))
			}
			return nil, err
		}
		if listing.Shop != nil && !listing.Shop.State {
			return nil, shared.NewDomainError("SHOP_INACTIVE", fmt.Sprintf("Shop %q is not accepting orders", listing.Shop.Name))
		}

		item, err := trade.NewOrderItem(basket.ID, listing.ID, input.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := s.orderRepo.AddItems(ctx, items); err != nil {
		if err == shared.ErrAlreadyExists {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "One of the listings is already in the basket")
		}
		return nil, err
	}

	return s.GetBasket(ctx, userID)
}

// UpdateItems applies quantity changes to basket line items.
// Non-positive quantities and foreign item ids are skipped.
func (s *BasketService) UpdateItems(ctx context.Context, userID uuid.UUID, inputs []UpdateItemInput) (*ItemsUpdatedDTO, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := make([]trade.ItemQuantityUpdate, 0, len(inputs))
	for _, input := range inputs {
		updates = append(updates, trade.ItemQuantityUpdate{
			ItemID:   input.ItemID,
			Quantity: input.Quantity,
		})
	}
	updated, err := s.orderRepo.UpdateItemQuantities(ctx, basket.ID, updates)
	if err != nil {
		return nil, err
	}

	refreshed, err := s.GetBasket(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ItemsUpdatedDTO{Updated: updated, Basket: refreshed}, nil
}

// DeleteItems removes line items from the basket, skipping foreign ids
func (s *BasketService) DeleteItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (*ItemsDeletedDTO, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.orderRepo.DeleteItems(ctx, basket.ID, itemIDs)
	if err != nil {
		return nil, err
	}

	refreshed, err := s.GetBasket(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ItemsDeletedDTO{Deleted: deleted, Basket: refreshed}, nil
}
