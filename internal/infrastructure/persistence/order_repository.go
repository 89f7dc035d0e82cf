package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/domain/trade"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// GetOrCreateBasket atomically returns the user's open basket, creating it
// when absent. The partial unique index on (user_id) WHERE status='basket'
// makes concurrent creation race-safe: the loser re-reads the winner's row.
func (r *GormOrderRepository) GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*trade.Order, error) {
	basket, err := r.findBasketRow(ctx, userID)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := trade.NewBasket(userID)
	if err != nil {
		return nil, err
	}
	if cerr := r.db.WithContext(ctx).Create(fresh).Error; cerr != nil {
		if errors.Is(cerr, gorm.ErrDuplicatedKey) {
			return r.findBasketRow(ctx, userID)
		}
		return nil, cerr
	}
	return fresh, nil
}

func (r *GormOrderRepository) findBasketRow(ctx context.Context, userID uuid.UUID) (*trade.Order, error) {
	var basket trade.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, trade.OrderStatusBasket).
		First(&basket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &basket, nil
}

// FindBasket returns the user's basket with items and listings loaded
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*trade.Order, error) {
	var basket trade.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, trade.OrderStatusBasket).
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Shop").
		Preload("Items.ProductInfo.Parameters").
		Preload("Items.ProductInfo.Parameters.Parameter").
		First(&basket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &basket, nil
}

// FindByIDForUser finds an order owned by the user
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Shop").
		Preload("Contact").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// AddItems inserts line items inside one transaction. A duplicate
// (order, listing) pair violates the unique index and fails the batch.
func (r *GormOrderRepository) AddItems(ctx context.Context, items []trade.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return shared.ErrAlreadyExists
				}
				return err
			}
		}
		return nil
	})
}

// UpdateItemQuantities applies quantity changes independently, returning
// the number of rows actually updated. Updates targeting items of other
// orders match zero rows.
func (r *GormOrderRepository) UpdateItemQuantities(ctx context.Context, orderID uuid.UUID, updates []trade.ItemQuantityUpdate) (int64, error) {
	var updated int64
	for _, u := range updates {
		if u.Quantity <= 0 {
			continue
		}
		result := r.db.WithContext(ctx).
			Model(&trade.OrderItem{}).
			Where("id = ? AND order_id = ?", u.ItemID, orderID).
			Update("quantity", u.Quantity)
		if result.Error != nil {
			return updated, result.Error
		}
		updated += result.RowsAffected
	}
	return updated, nil
}

// DeleteItems removes items of the order matching the given ids
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND id IN ?", orderID, itemIDs).
		Delete(&trade.OrderItem{})
	return result.RowsAffected, result.Error
}

// PlaceOrder turns a basket into a placed order with a single conditional
// update. The status guard makes concurrent placement of the same basket
// succeed exactly once.
func (r *GormOrderRepository) PlaceOrder(ctx context.Context, userID, orderID, contactID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, trade.OrderStatusBasket).
		Updates(map[string]any{
			"status":     trade.OrderStatusNew,
			"contact_id": contactID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus performs a guarded transition from one placed state to another
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to trade.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindPlacedByUser returns the user's non-basket orders, newest first
func (r *GormOrderRepository) FindPlacedByUser(ctx context.Context, userID uuid.UUID) ([]trade.Order, error) {
	var orders []trade.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, trade.OrderStatusBasket).
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Shop").
		Preload("Contact").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindPlacedByShopOwner returns non-basket orders containing listings of
// the shop owned by the given user
func (r *GormOrderRepository) FindPlacedByShopOwner(ctx context.Context, shopUserID uuid.UUID) ([]trade.Order, error) {
	var orders []trade.Order
	err := r.db.WithContext(ctx).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.user_id = ? AND orders.status <> ?", shopUserID, trade.OrderStatusBasket).
		Distinct("orders.*").
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Shop").
		Preload("Contact").
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByIDForShopOwner finds one placed order containing the shop's listings
func (r *GormOrderRepository) FindByIDForShopOwner(ctx context.Context, shopUserID, orderID uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	err := r.db.WithContext(ctx).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("orders.id = ? AND shops.user_id = ? AND orders.status <> ?",
			orderID, shopUserID, trade.OrderStatusBasket).
		Distinct("orders.*").
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Shop").
		Preload("Contact").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
