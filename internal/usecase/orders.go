package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// OrderUseCase covers order listing and the seller's fulfillment operations.
type OrderUseCase struct {
	orders repository.OrderRepository
	cache  statuscache.Store
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, cache statuscache.Store, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, cache: cache, logger: logger}
}

// ListUserOrders returns the customer's visible orders: cash-on-delivery
// orders and online orders that have been paid.
func (u *OrderUseCase) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAllOrders returns every visible order for the seller console.
func (u *OrderUseCase) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// UpdateStatus sets the fulfillment status of an order.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if err := u.cache.SetOrderState(ctx, id.String(), statuscache.OrderState{
		Status: string(order.Status),
		IsPaid: order.IsPaid,
	}); err != nil {
		u.logger.Warn("order state cache update failed", slog.String("error", err.Error()))
	}

	u.logger.Info("order status updated",
		slog.String("order", id.String()), slog.String("status", string(status)))
	return order, nil
}

// UpdateCODStatus advances the hand-off progress of a cash-on-delivery order.
// The parent order status and paid flag follow from the sub-status: pickup
// delivers and settles the order, a return cancels it.
func (u *OrderUseCase) UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus) (*model.Order, error) {
	if !cod.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentType != model.PaymentTypeCOD || order.COD == nil {
		return nil, domainErrors.ErrInvalidStatus
	}

	status, paid := model.DeriveFromCODStatus(order.Status, cod)
	updated, err := u.orders.UpdateCODStatus(ctx, id, cod, status, paid)
	if err != nil {
		return nil, err
	}

	if err := u.cache.SetOrderState(ctx, id.String(), statuscache.OrderState{
		Status: string(updated.Status),
		IsPaid: updated.IsPaid,
	}); err != nil {
		u.logger.Warn("order state cache update failed", slog.String("error", err.Error()))
	}

	return updated, nil
}

// DeleteOrder removes an order and restores its line-item stock.
func (u *OrderUseCase) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := u.orders.Delete(ctx, id); err != nil {
		return err
	}
	if err := u.cache.InvalidateOrder(ctx, id.String()); err != nil {
		u.logger.Warn("order state cache invalidation failed", slog.String("error", err.Error()))
	}
	u.logger.Info("order deleted", slog.String("order", id.String()))
	return nil
}

// OrderState answers UI status polling, from cache where warm and the store
// otherwise. Only the order's owner may poll it.
func (u *OrderUseCase) OrderState(ctx context.Context, userID, id uuid.UUID) (*statuscache.OrderState, error) {
	if state, err := u.cache.OrderState(ctx, id.String()); err != nil {
		u.logger.Warn("order state cache read failed", slog.String("error", err.Error()))
	} else if state != nil {
		return state, nil
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}

	state := statuscache.OrderState{Status: string(order.Status), IsPaid: order.IsPaid}
	if err := u.cache.SetOrderState(ctx, id.String(), state); err != nil {
		u.logger.Warn("order state cache update failed", slog.String("error", err.Error()))
	}
	return &state, nil
}

// ReapUnpaid cancels online orders still awaiting payment that are older than
// the cutoff, restoring their stock. Returns the number reaped.
func (u *OrderUseCase) ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	reaped, err := u.orders.ReapUnpaid(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}
	for _, order := range reaped {
		if err := u.cache.InvalidateOrder(ctx, order.ID.String()); err != nil &&
			!errors.Is(err, context.Canceled) {
			u.logger.Warn("order state cache invalidation failed", slog.String("error", err.Error()))
		}
		u.logger.Info("unpaid order reaped", slog.String("order", order.ID.String()))
	}
	return len(reaped), nil
}
