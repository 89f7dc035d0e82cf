package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/trade"
)

// AddItemInput is one listing to put into the basket
type AddItemInput struct {
	ListingID uuid.UUID
	Quantity  int
}

// UpdateItemInput is one quantity change for a basket line item
type UpdateItemInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// PlaceOrderInput contains the input for turning a basket into an order
type PlaceOrderInput struct {
	UserID    uuid.UUID
	OrderID   uuid.UUID
	ContactID uuid.UUID
}

// OrderItemDTO is the transport form of a line item
type OrderItemDTO struct {
	ID       uuid.UUID       `json:"id"`
	Product  string          `json:"product"`
	Shop     string          `json:"shop"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// ContactDTO is the delivery contact attached to a placed order
type ContactDTO struct {
	ID     uuid.UUID `json:"id"`
	City   string    `json:"city"`
	Street string    `json:"street"`
	Phone  string    `json:"phone"`
}

// OrderDTO is the transport form of a basket or placed order
type OrderDTO struct {
	ID        uuid.UUID         `json:"id"`
	Status    trade.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemDTO    `json:"items"`
	Contact   *ContactDTO       `json:"contact,omitempty"`
	TotalSum  decimal.Decimal   `json:"total_sum"`
}

// ItemsUpdatedDTO reports how many line items a quantity-change batch
// touched, together with the refreshed basket
type ItemsUpdatedDTO struct {
	Updated int64     `json:"updated"`
	Basket  *OrderDTO `json:"basket"`
}

// ItemsDeletedDTO reports how many line items a delete batch removed,
// together with the refreshed basket
type ItemsDeletedDTO struct {
	Deleted int64     `json:"deleted"`
	Basket  *OrderDTO `json:"basket"`
}

// ToOrderDTO maps an order with loaded associations to its transport form
func ToOrderDTO(order *trade.Order) OrderDTO {
	dto := OrderDTO{
		ID:        order.ID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Items:     make([]OrderItemDTO, 0, len(order.Items)),
		TotalSum:  order.TotalSum(),
	}
	for i := range order.Items {
		item := &order.Items[i]
		itemDTO := OrderItemDTO{
			ID:       item.ID,
			Quantity: item.Quantity,
			Cost:     item.Cost(),
		}
		if item.ProductInfo != nil {
			itemDTO.Price = item.ProductInfo.Price
			if item.ProductInfo.Product != nil {
				itemDTO.Product = item.ProductInfo.Product.Name
			}
			if item.ProductInfo.Shop != nil {
				itemDTO.Shop = item.ProductInfo.Shop.Name
			}
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	if order.Contact != nil {
		dto.Contact = &ContactDTO{
			ID:     order.Contact.ID,
			City:   order.Contact.City,
			Street: order.Contact.Street,
			Phone:  order.Contact.Phone,
		}
	}
	return dto
}
