package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusBasket, OrderStatusNew, true},
		{OrderStatusBasket, OrderStatusConfirmed, false},
		{OrderStatusBasket, OrderStatusCanceled, false},
		{OrderStatusNew, OrderStatusConfirmed, true},
		{OrderStatusNew, OrderStatusCanceled, true},
		{OrderStatusNew, OrderStatusAssembled, false},
		{OrderStatusConfirmed, OrderStatusAssembled, true},
		{OrderStatusConfirmed, OrderStatusCanceled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusAssembled, OrderStatusSent, true},
		{OrderStatusAssembled, OrderStatusCanceled, true},
		{OrderStatusSent, OrderStatusDelivered, true},
		{OrderStatusSent, OrderStatusCanceled, true},
		{OrderStatusSent, OrderStatusNew, false},
		{OrderStatusDelivered, OrderStatusCanceled, false},
		{OrderStatusCanceled, OrderStatusNew, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCanceled.IsTerminal())
	assert.False(t, OrderStatusBasket.IsTerminal())
	assert.False(t, OrderStatusSent.IsTerminal())
}

func TestNewBasket(t *testing.T) {
	userID := uuid.New()

	basket, err := NewBasket(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, basket.UserID)
	assert.Equal(t, OrderStatusBasket, basket.Status)
	assert.True(t, basket.IsBasket())
	assert.Empty(t, basket.Items)

	_, err = NewBasket(uuid.Nil)
	assert.Error(t, err)
}

func TestNewOrderItem(t *testing.T) {
	orderID := uuid.New()
	listingID := uuid.New()

	item, err := NewOrderItem(orderID, listingID, 3)
	require.NoError(t, err)
	assert.Equal(t, orderID, item.OrderID)
	assert.Equal(t, listingID, item.ProductInfoID)
	assert.Equal(t, 3, item.Quantity)

	_, err = NewOrderItem(orderID, uuid.Nil, 3)
	assert.Error(t, err)

	_, err = NewOrderItem(orderID, listingID, 0)
	assert.Error(t, err)

	_, err = NewOrderItem(orderID, listingID, -1)
	assert.Error(t, err)
}

func TestOrderItem_Cost(t *testing.T) {
	item, err := NewOrderItem(uuid.New(), uuid.New(), 4)
	require.NoError(t, err)

	// Listing not loaded
	assert.True(t, item.Cost().IsZero())

	item.ProductInfo = &catalog.ProductInfo{Price: decimal.RequireFromString("110.50")}
	assert.Equal(t, "442", item.Cost().String())
}

func TestOrder_TotalSum(t *testing.T) {
	basket, err := NewBasket(uuid.New())
	require.NoError(t, err)

	assert.True(t, basket.TotalSum().IsZero())

	basket.Items = []OrderItem{
		{
			BaseEntity:  shared.NewBaseEntity(),
			Quantity:    2,
			ProductInfo: &catalog.ProductInfo{Price: decimal.NewFromInt(1000)},
		},
		{
			BaseEntity:  shared.NewBaseEntity(),
			Quantity:    3,
			ProductInfo: &catalog.ProductInfo{Price: decimal.RequireFromString("9.99")},
		},
	}
	assert.Equal(t, "2029.97", basket.TotalSum().String())
}

func TestOrder_MarkPlaced(t *testing.T) {
	basket, err := NewBasket(uuid.New())
	require.NoError(t, err)
	contactID := uuid.New()

	basket.MarkPlaced(contactID)

	assert.Equal(t, OrderStatusNew, basket.Status)
	require.NotNil(t, basket.ContactID)
	assert.Equal(t, contactID, *basket.ContactID)
	assert.False(t, basket.IsBasket())

	events := basket.GetDomainEvents()
	require.Len(t, events, 1)
	placed, ok := events[0].(*OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, basket.ID, placed.AggregateID())
}
