package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/notify"
	"github.com/virebo/lanthandel/internal/adapter/payment"
	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// codDeliveryMargin separates the estimated COD hand-off from the requested
// delivery date.
const codDeliveryMargin = 72 * time.Hour

// CheckoutItem is one requested order line.
type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

// CheckoutResult is the outcome of an online checkout: the created order and
// the provider URL the customer is redirected to.
type CheckoutResult struct {
	Order       *model.Order
	RedirectURL string
}

// CheckoutUseCase runs order placement for both payment modes.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	addresses repository.AddressRepository
	payments  payment.Client
	notifier  notify.Publisher
	clientURL string
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	orders repository.OrderRepository,
	addresses repository.AddressRepository,
	payments payment.Client,
	notifier notify.Publisher,
	clientURL string,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:    orders,
		addresses: addresses,
		payments:  payments,
		notifier:  notifier,
		clientURL: clientURL,
		logger:    logger,
	}
}

// PlaceCODOrder places a cash-on-delivery order. Stock is reserved and the
// order created atomically; a tracking number and estimated delivery are
// assigned up front.
func (u *CheckoutUseCase) PlaceCODOrder(ctx context.Context, userID uuid.UUID, items []CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*model.Order, error) {
	if err := u.validate(ctx, userID, items, addressID, deliveryDate); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:       userID,
		AddressID:    addressID,
		PaymentType:  model.PaymentTypeCOD,
		DeliveryDate: deliveryDate,
		Status:       model.OrderStatusProcessing,
		Items:        toOrderItems(items),
		COD: &model.CODDetails{
			TrackingNumber:    newTrackingNumber(),
			EstimatedDelivery: deliveryDate.Add(codDeliveryMargin),
			Status:            model.CODStatusNotShipped,
		},
	}

	placed, err := u.orders.Place(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := u.notifier.PublishOrderConfirmation(ctx, placed); err != nil {
		u.logger.Warn("order confirmation publish failed",
			slog.String("order", placed.ID.String()), slog.String("error", err.Error()))
	}

	return placed, nil
}

// PlaceOnlineOrder places an order paid through the payment provider. The
// order is created awaiting payment and a hosted checkout session is opened;
// if the provider call fails the order is rolled back and its stock restored.
func (u *CheckoutUseCase) PlaceOnlineOrder(ctx context.Context, userID uuid.UUID, items []CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*CheckoutResult, error) {
	if err := u.validate(ctx, userID, items, addressID, deliveryDate); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:       userID,
		AddressID:    addressID,
		PaymentType:  model.PaymentTypeOnline,
		DeliveryDate: deliveryDate,
		Status:       model.OrderStatusAwaitingPayment,
		Items:        toOrderItems(items),
	}

	placed, err := u.orders.Place(ctx, order)
	if err != nil {
		return nil, err
	}

	lineItems := make([]payment.SessionLineItem, 0, len(placed.Items))
	for _, item := range placed.Items {
		lineItems = append(lineItems, payment.SessionLineItem{
			Name:       item.Name,
			UnitAmount: model.TaxedUnitMinor(item.UnitPrice),
			Quantity:   item.Quantity,
		})
	}

	session, err := u.payments.CreateCheckoutSession(ctx, payment.SessionRequest{
		LineItems:  lineItems,
		SuccessURL: u.clientURL + "/loader?next=my-orders",
		CancelURL:  u.clientURL + "/cart",
		OrderID:    placed.ID.String(),
		UserID:     userID.String(),
	})
	if err != nil {
		// Undo the placement so no stock stays reserved for a session that
		// never existed.
		if delErr := u.orders.Delete(ctx, placed.ID); delErr != nil {
			u.logger.Error("rollback of failed online order failed",
				slog.String("order", placed.ID.String()), slog.String("error", delErr.Error()))
		}
		return nil, err
	}

	if err := u.orders.SetSessionID(ctx, placed.ID, session.ID); err != nil {
		u.logger.Warn("persisting session id failed",
			slog.String("order", placed.ID.String()), slog.String("error", err.Error()))
	}
	placed.SessionID = session.ID

	return &CheckoutResult{Order: placed, RedirectURL: session.URL}, nil
}

func (u *CheckoutUseCase) validate(ctx context.Context, userID uuid.UUID, items []CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) error {
	if len(items) == 0 || addressID == uuid.Nil || deliveryDate.IsZero() {
		return domainErrors.ErrValidation
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return domainErrors.ErrValidation
		}
	}

	address, err := u.addresses.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address.UserID != userID {
		return domainErrors.ErrNotFound
	}
	return nil
}

func toOrderItems(items []CheckoutItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}

// newTrackingNumber synthesizes a COD tracking number from the current time
// and a random suffix.
func newTrackingNumber() string {
	return fmt.Sprintf("SE%d%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
