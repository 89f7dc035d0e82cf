package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/domain/trade"
	"github.com/orderhub/backend/internal/infrastructure/jobs"
)

// Transient SMTP failures get a bounded number of re-sends on the queue
const emailMaxRetries = 2

// EmailHandler turns domain events into outgoing email. Delivery happens
// on the background job queue so publishers never block on SMTP.
type EmailHandler struct {
	mailer        Mailer
	queue         jobs.Enqueuer
	users         identity.UserRepository
	confirmTokens identity.ConfirmEmailTokenRepository
	logger        *zap.Logger
}

// NewEmailHandler creates an event handler for email notifications
func NewEmailHandler(
	mailer Mailer,
	queue jobs.Enqueuer,
	users identity.UserRepository,
	confirmTokens identity.ConfirmEmailTokenRepository,
	logger *zap.Logger,
) *EmailHandler {
	return &EmailHandler{
		mailer:        mailer,
		queue:         queue,
		users:         users,
		confirmTokens: confirmTokens,
		logger:        logger,
	}
}

// EventTypes returns the event types this handler reacts to
func (h *EmailHandler) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		identity.EventTypePasswordResetRequested,
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
	}
}

// Handle schedules the email matching the event
func (h *EmailHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.UserRegisteredEvent:
		return h.enqueueConfirmationEmail(e)
	case *identity.PasswordResetRequestedEvent:
		return h.enqueue("password-reset-email",
			[]string{e.Email},
			"Password reset",
			fmt.Sprintf("To reset your password use this token:\n\n%s\n\nIf you did not request a reset, ignore this message.", e.Token),
		)
	case *trade.OrderPlacedEvent:
		return h.enqueueOrderEmail(e)
	case *trade.OrderStatusChangedEvent:
		return h.enqueueStatusEmail(e)
	default:
		h.logger.Warn("unexpected event type for email handler",
			zap.String("event_type", event.EventType()),
		)
		return nil
	}
}

func (h *EmailHandler) enqueueConfirmationEmail(e *identity.UserRegisteredEvent) error {
	userID := e.AggregateID()
	return h.enqueueFunc("confirmation-email", func(ctx context.Context) error {
		token, err := h.confirmTokens.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to obtain confirmation token: %w", err)
		}
		return h.mailer.Send(ctx,
			[]string{e.Email},
			"Confirm your email address",
			fmt.Sprintf("Welcome!\n\nConfirm your account with this token:\n\n%s", token.Key),
		)
	})
}

func (h *EmailHandler) enqueueOrderEmail(e *trade.OrderPlacedEvent) error {
	orderID := e.AggregateID()
	userID := e.UserID
	return h.enqueueFunc("order-placed-email", func(ctx context.Context) error {
		user, err := h.users.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load order recipient: %w", err)
		}
		return h.mailer.Send(ctx,
			[]string{user.Email},
			"Order received",
			fmt.Sprintf("Thank you for your order.\n\nOrder %s has been placed and is being processed.", orderID),
		)
	})
}

func (h *EmailHandler) enqueueStatusEmail(e *trade.OrderStatusChangedEvent) error {
	orderID := e.AggregateID()
	userID := e.UserID
	to := string(e.To)
	return h.enqueueFunc("order-status-email", func(ctx context.Context) error {
		user, err := h.users.FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load order recipient: %w", err)
		}
		return h.mailer.Send(ctx,
			[]string{user.Email},
			"Order status updated",
			fmt.Sprintf("Order %s is now %s.", orderID, to),
		)
	})
}

func (h *EmailHandler) enqueue(name string, to []string, subject, body string) error {
	return h.enqueueFunc(name, func(ctx context.Context) error {
		return h.mailer.Send(ctx, to, subject, body)
	})
}

func (h *EmailHandler) enqueueFunc(name string, run func(ctx context.Context) error) error {
	job := jobs.NewJob(name, run)
	job.MaxRetries = emailMaxRetries
	if err := h.queue.Enqueue(job); err != nil {
		h.logger.Error("failed to enqueue email job",
			zap.String("job", name),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*EmailHandler)(nil)
