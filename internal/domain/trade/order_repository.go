package trade

import (
	"context"

	"github.com/google/uuid"
)

// ItemQuantityUpdate targets one line item for a quantity change
type ItemQuantityUpdate struct {
	ItemID   uuid.UUID
	Quantity int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// GetOrCreateBasket atomically returns the user's open basket, creating
	// it when absent. Concurrent calls for the same user yield one basket.
	GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindBasket returns the user's basket with items, listings and
	// parameters loaded, or ErrNotFound when no basket exists
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindByIDForUser finds an order owned by the user
	FindByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)

	// AddItems inserts line items into an order inside one transaction;
	// a duplicate (order, listing) pair fails the whole batch
	AddItems(ctx context.Context, items []OrderItem) error

	// UpdateItemQuantities applies quantity changes to items of the given
	// order independently, returning the number of rows updated
	UpdateItemQuantities(ctx context.Context, orderID uuid.UUID, updates []ItemQuantityUpdate) (int64, error)

	// DeleteItems removes items of the given order matching ids, returning
	// the number of rows deleted; foreign ids simply do not match
	DeleteItems(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) (int64, error)

	// PlaceOrder performs the single conditional update that turns a basket
	// into a placed order: status and contact are set only when the row
	// still matches (id, user, status=basket). Returns false when zero rows
	// were affected.
	PlaceOrder(ctx context.Context, userID, orderID, contactID uuid.UUID) (bool, error)

	// UpdateStatus performs a guarded transition from one placed state to
	// another, returning false when the order was not in the from state
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to OrderStatus) (bool, error)

	// FindPlacedByUser returns the user's non-basket orders with items,
	// listings and the delivery contact loaded
	FindPlacedByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindPlacedByShopOwner returns non-basket orders that contain listings
	// belonging to the shop owned by the given user
	FindPlacedByShopOwner(ctx context.Context, shopUserID uuid.UUID) ([]Order, error)

	// FindByIDForShopOwner returns one non-basket order containing listings
	// of the shop owned by the given user, or ErrNotFound
	FindByIDForShopOwner(ctx context.Context, shopUserID, orderID uuid.UUID) (*Order, error)
}
