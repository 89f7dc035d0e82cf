package trade

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order domain event types
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is published when a basket becomes a placed order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	ContactID uuid.UUID `json:"contact_id"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	var contactID uuid.UUID
	if order.ContactID != nil {
		contactID = *order.ContactID
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, order.ID, AggregateTypeOrder),
		UserID:          order.UserID,
		ContactID:       contactID,
	}
}

// OrderStatusChangedEvent is published on any post-placement transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID   `json:"user_id"`
	From   OrderStatus `json:"from"`
	To     OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, order.ID, AggregateTypeOrder),
		UserID:          order.UserID,
		From:            from,
		To:              to,
	}
}
