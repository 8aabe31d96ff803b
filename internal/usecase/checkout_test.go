package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	testhelpers "github.com/virebo/lanthandel/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type checkoutFixture struct {
	uc        *CheckoutUseCase
	orders    *testhelpers.OrderRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	addresses *testhelpers.AddressRepositoryStub
	payments  *testhelpers.PaymentClientStub
	publisher *testhelpers.PublisherStub

	userID    uuid.UUID
	addressID uuid.UUID
}

func newCheckoutFixture() *checkoutFixture {
	products := testhelpers.NewProductRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	orders.Products = products
	addresses := testhelpers.NewAddressRepositoryStub()
	payments := &testhelpers.PaymentClientStub{}
	publisher := &testhelpers.PublisherStub{}

	userID := uuid.New()
	addressID := addresses.Add(model.Address{UserID: userID, FirstName: "Eva"})

	return &checkoutFixture{
		uc:        NewCheckoutUseCase(orders, addresses, payments, publisher, "http://localhost:3000", discardLogger()),
		orders:    orders,
		products:  products,
		addresses: addresses,
		payments:  payments,
		publisher: publisher,
		userID:    userID,
		addressID: addressID,
	}
}

func TestPlaceCODOrder(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})
	deliveryDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	order, err := f.uc.PlaceCODOrder(context.Background(), f.userID,
		[]CheckoutItem{{ProductID: productID, Quantity: 3}}, f.addressID, deliveryDate)
	if err != nil {
		t.Fatalf("place COD order: %v", err)
	}

	if order.Status != model.OrderStatusProcessing {
		t.Fatalf("status = %q, want %q", order.Status, model.OrderStatusProcessing)
	}
	if order.Amount != 306 {
		t.Fatalf("amount = %d, want 306", order.Amount)
	}
	if order.COD == nil {
		t.Fatal("expected COD details")
	}
	if !strings.HasPrefix(order.COD.TrackingNumber, "SE") {
		t.Fatalf("tracking number %q lacks SE prefix", order.COD.TrackingNumber)
	}
	if want := deliveryDate.Add(72 * time.Hour); !order.COD.EstimatedDelivery.Equal(want) {
		t.Fatalf("estimated delivery = %v, want %v", order.COD.EstimatedDelivery, want)
	}
	if order.COD.Status != model.CODStatusNotShipped {
		t.Fatalf("cod status = %q, want %q", order.COD.Status, model.CODStatusNotShipped)
	}
	if order.COD.Amount != order.Amount {
		t.Fatalf("cod amount = %d, want %d", order.COD.Amount, order.Amount)
	}

	product := f.products.Products[productID]
	if product.Quantity != 2 || !product.InStock {
		t.Fatalf("stock after placement = %d (in stock %v), want 2 in stock", product.Quantity, product.InStock)
	}
	if len(f.publisher.Published) != 1 {
		t.Fatalf("expected 1 confirmation publish, got %d", len(f.publisher.Published))
	}
}

func TestPlaceCODOrderInsufficientStock(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 2})

	_, err := f.uc.PlaceCODOrder(context.Background(), f.userID,
		[]CheckoutItem{{ProductID: productID, Quantity: 3}}, f.addressID, time.Now().AddDate(0, 0, 3))
	if !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	var stockErr *domainErrors.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected typed stock error, got %T", err)
	}
	if stockErr.Available != 2 || stockErr.ProductName != "Honung" {
		t.Fatalf("unexpected stock error details: %+v", stockErr)
	}

	if got := f.products.Products[productID].Quantity; got != 2 {
		t.Fatalf("stock mutated on failed placement: %d", got)
	}
	if len(f.orders.Orders) != 0 {
		t.Fatal("order created despite stock failure")
	}
	if len(f.publisher.Published) != 0 {
		t.Fatal("confirmation published despite stock failure")
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})
	item := CheckoutItem{ProductID: productID, Quantity: 1}
	deliveryDate := time.Now().AddDate(0, 0, 3)

	cases := []struct {
		name    string
		items   []CheckoutItem
		address uuid.UUID
		date    time.Time
	}{
		{"empty items", nil, f.addressID, deliveryDate},
		{"missing address", []CheckoutItem{item}, uuid.Nil, deliveryDate},
		{"zero delivery date", []CheckoutItem{item}, f.addressID, time.Time{}},
		{"non-positive quantity", []CheckoutItem{{ProductID: productID, Quantity: 0}}, f.addressID, deliveryDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.PlaceCODOrder(context.Background(), f.userID, tc.items, tc.address, tc.date)
			if !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPlaceOrderForeignAddress(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})
	otherAddress := f.addresses.Add(model.Address{UserID: uuid.New()})

	_, err := f.uc.PlaceCODOrder(context.Background(), f.userID,
		[]CheckoutItem{{ProductID: productID, Quantity: 1}}, otherAddress, time.Now().AddDate(0, 0, 3))
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign address, got %v", err)
	}
}

func TestPlaceOnlineOrder(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 125, Quantity: 5})

	result, err := f.uc.PlaceOnlineOrder(context.Background(), f.userID,
		[]CheckoutItem{{ProductID: productID, Quantity: 2}}, f.addressID, time.Now().AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("place online order: %v", err)
	}

	if result.Order.Status != model.OrderStatusAwaitingPayment {
		t.Fatalf("status = %q, want %q", result.Order.Status, model.OrderStatusAwaitingPayment)
	}
	if result.Order.COD != nil {
		t.Fatal("online order must not carry COD details")
	}
	if result.RedirectURL == "" {
		t.Fatal("expected provider redirect URL")
	}
	if result.Order.SessionID != "cs_test" {
		t.Fatalf("session id = %q, want cs_test", result.Order.SessionID)
	}
	if got := f.orders.SessionSets[result.Order.ID]; got != "cs_test" {
		t.Fatalf("persisted session id = %q", got)
	}

	if len(f.payments.Requests) != 1 {
		t.Fatalf("expected 1 session request, got %d", len(f.payments.Requests))
	}
	req := f.payments.Requests[0]
	if len(req.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(req.LineItems))
	}
	if req.LineItems[0].UnitAmount != 12750 {
		t.Fatalf("unit amount = %d, want 12750", req.LineItems[0].UnitAmount)
	}
	if req.LineItems[0].Name != "Honung" {
		t.Fatalf("line item name = %q", req.LineItems[0].Name)
	}
	if req.SuccessURL != "http://localhost:3000/loader?next=my-orders" {
		t.Fatalf("success URL = %q", req.SuccessURL)
	}
	if req.CancelURL != "http://localhost:3000/cart" {
		t.Fatalf("cancel URL = %q", req.CancelURL)
	}
	if req.OrderID != result.Order.ID.String() || req.UserID != f.userID.String() {
		t.Fatal("session metadata does not reference the placed order")
	}
}

func TestPlaceOnlineOrderProviderFailure(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})
	f.payments.Err = domainErrors.ErrPaymentProvider

	_, err := f.uc.PlaceOnlineOrder(context.Background(), f.userID,
		[]CheckoutItem{{ProductID: productID, Quantity: 3}}, f.addressID, time.Now().AddDate(0, 0, 3))
	if !errors.Is(err, domainErrors.ErrPaymentProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}

	if len(f.orders.Orders) != 0 {
		t.Fatal("order survived provider failure")
	}
	if got := f.products.Products[productID].Quantity; got != 5 {
		t.Fatalf("stock not restored after rollback: %d", got)
	}
}

func TestPlaceCODOrderPublishFailureIsBestEffort(t *testing.T) {
	f := newCheckoutFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})
	f.publisher.Err = errors.New("broker down")

	order, err := f.uc.PlaceCODOrder(context.Background(), f.userID,
		[]CheckoutItem{{ProductID: productID, Quantity: 1}}, f.addressID, time.Now().AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("publish failure must not fail checkout: %v", err)
	}
	if order == nil {
		t.Fatal("expected placed order")
	}
}
