package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ShopStateDTO is the accepting-orders state of a supplier's shop
type ShopStateDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// ShopService manages the supplier's own shop
type ShopService struct {
	shopRepo catalog.ShopRepository
	logger   *zap.Logger
}

// NewShopService creates a new shop service
func NewShopService(shopRepo catalog.ShopRepository, logger *zap.Logger) *ShopService {
	return &ShopService{shopRepo: shopRepo, logger: logger}
}

// GetState returns the state of the shop owned by the user
func (s *ShopService) GetState(ctx context.Context, userID uuid.UUID) (*ShopStateDTO, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("NO_SHOP", "No shop exists for this account; import a price list first")
		}
		return nil, err
	}
	return &ShopStateDTO{ID: shop.ID, Name: shop.Name, State: shop.State}, nil
}

// SetState toggles whether the user's shop accepts orders
func (s *ShopService) SetState(ctx context.Context, userID uuid.UUID, state bool) (*ShopStateDTO, error) {
	updated, err := s.shopRepo.UpdateState(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, shared.NewDomainError("NO_SHOP", "No shop exists for this account; import a price list first")
	}
	return s.GetState(ctx, userID)
}
