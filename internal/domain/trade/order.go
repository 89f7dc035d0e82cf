package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/partner"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusBasket    OrderStatus = "basket"
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssembled OrderStatus = "assembled"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusBasket, OrderStatusNew, OrderStatusConfirmed,
		OrderStatusAssembled, OrderStatusSent, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states an order can never leave
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// Placement moves basket to new; placed orders progress toward delivered and
// may be canceled from any non-terminal placed state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusBasket:
		return target == OrderStatusNew
	case OrderStatusNew:
		return target == OrderStatusConfirmed || target == OrderStatusCanceled
	case OrderStatusConfirmed:
		return target == OrderStatusAssembled || target == OrderStatusCanceled
	case OrderStatusAssembled:
		return target == OrderStatusSent || target == OrderStatusCanceled
	case OrderStatusSent:
		return target == OrderStatusDelivered || target == OrderStatusCanceled
	}
	return false
}

// OrderItem is a line item binding a listing to an order
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID            `gorm:"type:uuid;not null;index:idx_order_listing,unique"`
	ProductInfoID uuid.UUID            `gorm:"type:uuid;not null;index:idx_order_listing,unique"`
	ProductInfo   *catalog.ProductInfo `gorm:"foreignKey:ProductInfoID"`
	Quantity      int                  `gorm:"not null"`
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a line item for a listing
func NewOrderItem(orderID, productInfoID uuid.UUID, quantity int) (*OrderItem, error) {
	if productInfoID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LISTING", "Listing cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	return &OrderItem{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       orderID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
	}, nil
}

// Cost returns quantity times the listing price, zero when the listing
// association is not loaded
func (i *OrderItem) Cost() decimal.Decimal {
	if i.ProductInfo == nil {
		return decimal.Zero
	}
	return i.ProductInfo.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is either a user's open basket (status=basket) or a placed order.
// Each user has at most one basket at a time, enforced by a partial unique
// index at the storage layer.
type Order struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status    OrderStatus      `gorm:"size:20;not null;default:basket;index"`
	ContactID *uuid.UUID       `gorm:"type:uuid"`
	Contact   *partner.Contact `gorm:"foreignKey:ContactID"`
	Items     []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewBasket creates an empty basket order for a user
func NewBasket(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order owner cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusBasket,
		Items:             make([]OrderItem, 0),
	}, nil
}

// IsBasket reports whether the order is still an open basket
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}

// TotalSum computes the order total from loaded line items
func (o *Order) TotalSum() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Cost())
	}
	return total
}

// MarkPlaced records the placement transition on the in-memory aggregate
// after the conditional update succeeded, and emits the placement event
func (o *Order) MarkPlaced(contactID uuid.UUID) {
	o.Status = OrderStatusNew
	o.ContactID = &contactID
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderPlacedEvent(o))
}
