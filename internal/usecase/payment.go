package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/notify"
	"github.com/virebo/lanthandel/internal/adapter/payment"
	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// PaymentUseCase reconciles provider webhook events against stored orders.
type PaymentUseCase struct {
	orders        repository.OrderRepository
	users         repository.UserRepository
	cache         statuscache.Store
	notifier      notify.Publisher
	webhookSecret string
	logger        *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	cache statuscache.Store,
	notifier notify.Publisher,
	webhookSecret string,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:        orders,
		users:         users,
		cache:         cache,
		notifier:      notifier,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleWebhook verifies and applies one provider event. Unknown event types
// are acknowledged without effect; events already processed are skipped.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := payment.ConstructEvent(payload, sigHeader, u.webhookSecret)
	if err != nil {
		return err
	}

	if event.ID != "" {
		firstSeen, err := u.cache.MarkEventProcessed(ctx, event.ID)
		if err != nil {
			// Dedup degrades to at-least-once; the handlers below tolerate
			// replays.
			u.logger.Warn("webhook dedup unavailable", slog.String("error", err.Error()))
		} else if !firstSeen {
			u.logger.Info("webhook event already processed", slog.String("event", event.ID))
			return nil
		}
	}

	var handleErr error
	switch event.Type {
	case payment.EventSessionCompleted:
		handleErr = u.handleCompleted(ctx, &event.Data.Object)
	case payment.EventSessionExpired:
		handleErr = u.handleExpired(ctx, &event.Data.Object)
	default:
		u.logger.Info("ignoring webhook event", slog.String("type", event.Type))
		return nil
	}

	if handleErr != nil && event.ID != "" {
		// Release the dedup claim, otherwise the provider's redelivery of
		// this event would be skipped and the payment lost.
		if err := u.cache.ClearEvent(ctx, event.ID); err != nil {
			u.logger.Warn("webhook dedup release failed",
				slog.String("event", event.ID), slog.String("error", err.Error()))
		}
	}
	return handleErr
}

// handleCompleted marks the order paid and clears the paying customer's cart.
func (u *PaymentUseCase) handleCompleted(ctx context.Context, session *payment.EventSession) error {
	orderID, err := sessionOrderID(session)
	if err != nil {
		return err
	}

	if err := u.orders.MarkPaid(ctx, orderID, model.OrderStatusPaymentReceived); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Warn("completed payment for unknown order", slog.String("order", orderID.String()))
			return nil
		}
		return err
	}

	if err := u.cache.SetOrderState(ctx, orderID.String(), statuscache.OrderState{
		Status: string(model.OrderStatusPaymentReceived),
		IsPaid: true,
	}); err != nil {
		u.logger.Warn("order state cache update failed", slog.String("error", err.Error()))
	}

	if raw, ok := session.Metadata["userId"]; ok {
		if userID, err := uuid.Parse(raw); err == nil {
			if err := u.users.UpdateCart(ctx, userID, model.Cart{}); err != nil {
				u.logger.Warn("clearing cart after payment failed",
					slog.String("user", userID.String()), slog.String("error", err.Error()))
			}
		}
	}

	if order, err := u.orders.GetByID(ctx, orderID); err == nil {
		if err := u.notifier.PublishOrderConfirmation(ctx, order); err != nil {
			u.logger.Warn("order confirmation publish failed",
				slog.String("order", orderID.String()), slog.String("error", err.Error()))
		}
	}

	u.logger.Info("order paid", slog.String("order", orderID.String()))
	return nil
}

// handleExpired removes the abandoned order and restores its stock. Orders
// already paid, or already removed, are left alone.
func (u *PaymentUseCase) handleExpired(ctx context.Context, session *payment.EventSession) error {
	orderID, err := sessionOrderID(session)
	if err != nil {
		return err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if order.IsPaid {
		u.logger.Warn("expiry event for paid order ignored", slog.String("order", orderID.String()))
		return nil
	}

	if err := u.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := u.cache.InvalidateOrder(ctx, orderID.String()); err != nil {
		u.logger.Warn("order state cache invalidation failed", slog.String("error", err.Error()))
	}

	u.logger.Info("unpaid order expired", slog.String("order", orderID.String()))
	return nil
}

func sessionOrderID(session *payment.EventSession) (uuid.UUID, error) {
	raw, ok := session.Metadata["orderId"]
	if !ok {
		return uuid.Nil, domainErrors.ErrValidation
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainErrors.ErrValidation
	}
	return id, nil
}
