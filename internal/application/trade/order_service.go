package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/partner"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/domain/trade"
)

// OrderService handles order placement and the post-placement lifecycle
type OrderService struct {
	orderRepo      trade.OrderRepository
	contactRepo    partner.ContactRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo trade.OrderRepository,
	contactRepo partner.ContactRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		contactRepo:    contactRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// PlaceOrder turns the user's basket into a placed order. The transition is
// one conditional update, so two concurrent placements of the same basket
// cannot both succeed.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error) {
	basket, err := s.orderRepo.FindByIDForUser(ctx, input.UserID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !basket.IsBasket() {
		return nil, shared.NewDomainError("NOT_A_BASKET", "Order has already been placed")
	}
	if len(basket.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
	}

	contact, err := s.contactRepo.FindByIDForUser(ctx, input.UserID, input.ContactID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("UNKNOWN_CONTACT", "Delivery contact does not exist")
		}
		return nil, err
	}

	placed, err := s.orderRepo.PlaceOrder(ctx, input.UserID, basket.ID, contact.ID)
	if err != nil {
		return nil, err
	}
	if !placed {
		return nil, shared.NewDomainError("NOT_A_BASKET", "Order has already been placed")
	}

	basket.MarkPlaced(contact.ID)
	s.publishEvents(ctx, basket)

	s.logger.Info("Order placed",
		zap.String("order_id", basket.ID.String()),
		zap.String("user_id", input.UserID.String()))

	order, err := s.orderRepo.FindByIDForUser(ctx, input.UserID, basket.ID)
	if err != nil {
		return nil, err
	}
	dto := ToOrderDTO(order)
	return &dto, nil
}

// ListOrders returns the user's placed orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.orderRepo.FindPlacedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, ToOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// GetOrder returns one of the user's orders
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	dto := ToOrderDTO(order)
	return &dto, nil
}

// CancelOrder cancels one of the user's placed orders when its current
// state still allows cancellation
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, trade.OrderStatusCanceled)
}

// ListPartnerOrders returns placed orders containing listings of the shop
// owned by the given user
func (s *OrderService) ListPartnerOrders(ctx context.Context, shopUserID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.orderRepo.FindPlacedByShopOwner(ctx, shopUserID)
	if err != nil {
		return nil, err
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, ToOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// UpdatePartnerOrderStatus moves an order containing the supplier's
// listings to the target state
func (s *OrderService) UpdatePartnerOrderStatus(ctx context.Context, shopUserID, orderID uuid.UUID, target trade.OrderStatus) (*OrderDTO, error) {
	if !target.IsValid() || target == trade.OrderStatusBasket {
		return nil, shared.NewDomainError("INVALID_STATUS", "Target status is not valid")
	}

	order, err := s.orderRepo.FindByIDForShopOwner(ctx, shopUserID, orderID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, order, target)
}

// transition performs a guarded status change and publishes the
// status-changed event on success
func (s *OrderService) transition(ctx context.Context, order *trade.Order, target trade.OrderStatus) (*OrderDTO, error) {
	from := order.Status
	if !from.CanTransitionTo(target) {
		return nil, shared.NewDomainError("INVALID_TRANSITION",
			"Order cannot move from "+from.String()+" to "+target.String())
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, order.ID, from, target)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, shared.NewDomainError("STALE_ORDER", "Order state changed, reload and retry")
	}

	order.Status = target
	order.AddDomainEvent(trade.NewOrderStatusChangedEvent(order, from, target))
	s.publishEvents(ctx, order)

	dto := ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	order.ClearDomainEvents()
}
