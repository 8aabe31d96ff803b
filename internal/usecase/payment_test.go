package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/payment"
	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	testhelpers "github.com/virebo/lanthandel/internal/test"
)

const webhookSecret = "whsec_test"

type paymentFixture struct {
	uc        *PaymentUseCase
	orders    *testhelpers.OrderRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	users     *testhelpers.UserRepositoryStub
	cache     *testhelpers.StatusStoreStub
	publisher *testhelpers.PublisherStub
}

func newPaymentFixture() *paymentFixture {
	products := testhelpers.NewProductRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	orders.Products = products
	users := testhelpers.NewUserRepositoryStub()
	cache := testhelpers.NewStatusStoreStub()
	publisher := &testhelpers.PublisherStub{}

	return &paymentFixture{
		uc:        NewPaymentUseCase(orders, users, cache, publisher, webhookSecret, discardLogger()),
		orders:    orders,
		products:  products,
		users:     users,
		cache:     cache,
		publisher: publisher,
	}
}

func signedEvent(t *testing.T, eventID, eventType string, orderID, userID uuid.UUID) ([]byte, string) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":   eventID,
		"type": eventType,
		"data": map[string]any{
			"object": map[string]any{
				"id":             "cs_test",
				"payment_status": "paid",
				"metadata": map[string]string{
					"orderId": orderID.String(),
					"userId":  userID.String(),
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return payload, payment.SignPayload(payload, webhookSecret, time.Now())
}

func seedOnlineOrder(f *paymentFixture, userID uuid.UUID) *model.Order {
	order := &model.Order{
		UserID:      userID,
		PaymentType: model.PaymentTypeOnline,
		Status:      model.OrderStatusAwaitingPayment,
	}
	placed, _ := f.orders.Place(context.Background(), order)
	return placed
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	f := newPaymentFixture()
	payload, _ := signedEvent(t, "evt_1", payment.EventSessionCompleted, uuid.New(), uuid.New())

	err := f.uc.HandleWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	if !errors.Is(err, domainErrors.ErrSignature) {
		t.Fatalf("expected signature error, got %v", err)
	}
	if len(f.orders.Orders) != 0 && len(f.cache.Seen) != 0 {
		t.Fatal("state mutated on rejected signature")
	}
}

func TestHandleWebhookCompleted(t *testing.T) {
	f := newPaymentFixture()
	user, _ := f.users.Create(context.Background(), "Eva", "eva@example.se", "hash")
	if err := f.users.UpdateCart(context.Background(), user.ID, model.Cart{"p": 2}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	order := seedOnlineOrder(f, user.ID)

	payload, sig := signedEvent(t, "evt_1", payment.EventSessionCompleted, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("handle completed: %v", err)
	}

	stored := f.orders.Orders[order.ID]
	if !stored.IsPaid || stored.Status != model.OrderStatusPaymentReceived {
		t.Fatalf("order not settled: paid=%v status=%q", stored.IsPaid, stored.Status)
	}
	if len(f.users.ByID[user.ID].Cart) != 0 {
		t.Fatal("cart not cleared after payment")
	}
	if state, _ := f.cache.OrderState(context.Background(), order.ID.String()); state == nil || !state.IsPaid {
		t.Fatal("order state cache not updated")
	}
	if len(f.publisher.Published) != 1 {
		t.Fatalf("expected 1 confirmation publish, got %d", len(f.publisher.Published))
	}
}

func TestHandleWebhookCompletedIdempotent(t *testing.T) {
	f := newPaymentFixture()
	user, _ := f.users.Create(context.Background(), "Eva", "eva@example.se", "hash")
	order := seedOnlineOrder(f, user.ID)

	payload, sig := signedEvent(t, "evt_1", payment.EventSessionCompleted, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("redelivery: %v", err)
	}

	if len(f.publisher.Published) != 1 {
		t.Fatalf("redelivery republished confirmation: %d", len(f.publisher.Published))
	}
	stored := f.orders.Orders[order.ID]
	if !stored.IsPaid {
		t.Fatal("order lost paid flag on redelivery")
	}
}

func TestHandleWebhookRetriedAfterTransientFailure(t *testing.T) {
	f := newPaymentFixture()
	user, _ := f.users.Create(context.Background(), "Eva", "eva@example.se", "hash")
	order := seedOnlineOrder(f, user.ID)

	markPaidCalls := 0
	f.orders.MarkPaidFn = func(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
		markPaidCalls++
		if markPaidCalls == 1 {
			return errors.New("connection reset")
		}
		f.orders.MarkPaidFn = nil
		return f.orders.MarkPaid(ctx, id, status)
	}

	payload, sig := signedEvent(t, "evt_1", payment.EventSessionCompleted, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err == nil {
		t.Fatal("transient store failure must surface so the provider retries")
	}
	if f.cache.Seen["evt_1"] {
		t.Fatal("failed event left marked processed")
	}

	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if markPaidCalls != 2 {
		t.Fatalf("redelivery skipped, MarkPaid called %d times", markPaidCalls)
	}
	stored := f.orders.Orders[order.ID]
	if !stored.IsPaid || stored.Status != model.OrderStatusPaymentReceived {
		t.Fatalf("redelivered payment not applied: paid=%v status=%q", stored.IsPaid, stored.Status)
	}
	if !f.cache.Seen["evt_1"] {
		t.Fatal("successful event not marked processed")
	}
}

func TestHandleWebhookCompletedUnknownOrder(t *testing.T) {
	f := newPaymentFixture()

	payload, sig := signedEvent(t, "evt_1", payment.EventSessionCompleted, uuid.New(), uuid.New())
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("unknown order must be acknowledged, got %v", err)
	}
}

func TestHandleWebhookExpired(t *testing.T) {
	f := newPaymentFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})
	userID := uuid.New()
	order := &model.Order{
		UserID:      userID,
		PaymentType: model.PaymentTypeOnline,
		Status:      model.OrderStatusAwaitingPayment,
		Items:       []model.OrderItem{{ProductID: productID, Quantity: 3}},
	}
	placed, err := f.orders.Place(context.Background(), order)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	payload, sig := signedEvent(t, "evt_1", payment.EventSessionExpired, placed.ID, userID)
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("handle expired: %v", err)
	}

	if _, ok := f.orders.Orders[placed.ID]; ok {
		t.Fatal("expired order not removed")
	}
	if got := f.products.Products[productID].Quantity; got != 5 {
		t.Fatalf("stock not restored on expiry: %d, want 5", got)
	}
}

func TestHandleWebhookExpiredAfterPaidIgnored(t *testing.T) {
	f := newPaymentFixture()
	user, _ := f.users.Create(context.Background(), "Eva", "eva@example.se", "hash")
	order := seedOnlineOrder(f, user.ID)

	completed, sigC := signedEvent(t, "evt_1", payment.EventSessionCompleted, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), completed, sigC); err != nil {
		t.Fatalf("complete: %v", err)
	}

	expired, sigE := signedEvent(t, "evt_2", payment.EventSessionExpired, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), expired, sigE); err != nil {
		t.Fatalf("expired after paid: %v", err)
	}

	if _, ok := f.orders.Orders[order.ID]; !ok {
		t.Fatal("paid order removed by stale expiry event")
	}
}

func TestHandleWebhookExpiredThenCompleted(t *testing.T) {
	f := newPaymentFixture()
	user, _ := f.users.Create(context.Background(), "Eva", "eva@example.se", "hash")
	order := seedOnlineOrder(f, user.ID)

	expired, sigE := signedEvent(t, "evt_1", payment.EventSessionExpired, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), expired, sigE); err != nil {
		t.Fatalf("expire: %v", err)
	}

	// The order is gone; a late completed event is acknowledged gracefully.
	completed, sigC := signedEvent(t, "evt_2", payment.EventSessionCompleted, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), completed, sigC); err != nil {
		t.Fatalf("late completion must not error: %v", err)
	}
}

func TestHandleWebhookUnknownEventType(t *testing.T) {
	f := newPaymentFixture()
	payload, sig := signedEvent(t, "evt_1", "charge.refunded", uuid.New(), uuid.New())
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("unknown event type must be acknowledged, got %v", err)
	}
}

func TestHandleWebhookDedupUnavailableDegrades(t *testing.T) {
	f := newPaymentFixture()
	user, _ := f.users.Create(context.Background(), "Eva", "eva@example.se", "hash")
	order := seedOnlineOrder(f, user.ID)
	f.cache.Err = errors.New("redis down")

	payload, sig := signedEvent(t, "evt_1", payment.EventSessionCompleted, order.ID, user.ID)
	if err := f.uc.HandleWebhook(context.Background(), payload, sig); err != nil {
		t.Fatalf("dedup outage must not fail processing: %v", err)
	}
	if !f.orders.Orders[order.ID].IsPaid {
		t.Fatal("order not settled during dedup outage")
	}
}
