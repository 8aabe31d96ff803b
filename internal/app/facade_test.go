package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/server/http/handlers"
	testhelpers "github.com/virebo/lanthandel/internal/test"
	"github.com/virebo/lanthandel/internal/usecase"
)

var _ handlers.StorefrontFacade = (*StorefrontFacade)(nil)

type facadeFixture struct {
	facade   *StorefrontFacade
	users    *testhelpers.UserRepositoryStub
	products *testhelpers.ProductRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
}

func newFacadeFixture() *facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	users := testhelpers.NewUserRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	addresses := testhelpers.NewAddressRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	orders.Products = products
	cache := testhelpers.NewStatusStoreStub()
	payments := &testhelpers.PaymentClientStub{}
	notifier := &testhelpers.PublisherStub{}

	facade := NewStorefrontFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{},
			usecase.SellerCredentials{Email: "handlare@example.se", Password: "mycket-hemligt"}, logger),
		usecase.NewCatalogUseCase(products, logger),
		usecase.NewCartUseCase(users),
		usecase.NewAddressUseCase(addresses),
		usecase.NewCheckoutUseCase(orders, addresses, payments, notifier, "http://localhost:3000", logger),
		usecase.NewOrderUseCase(orders, cache, logger),
		usecase.NewPaymentUseCase(orders, users, cache, notifier, "whsec_test", logger),
	)
	return &facadeFixture{facade: facade, users: users, products: products, orders: orders}
}

func TestFacadeRegisterAndAuthenticate(t *testing.T) {
	f := newFacadeFixture()

	user, token, err := f.facade.Register(context.Background(), "Astrid", "astrid@example.se", "lösenord1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	again, _, err := f.facade.Authenticate(context.Background(), "astrid@example.se", "lösenord1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if again.ID != user.ID {
		t.Fatal("authenticated as a different user")
	}
}

func TestFacadeCatalogAndOrderFlow(t *testing.T) {
	f := newFacadeFixture()

	product, err := f.facade.AddProduct(context.Background(), &model.Product{
		Name: "Honung", Category: "Skafferi", Price: 120, OfferPrice: 100, Quantity: 5,
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	userID := uuid.New()
	order, err := f.orders.Place(context.Background(), &model.Order{
		UserID:      userID,
		PaymentType: model.PaymentTypeCOD,
		Status:      model.OrderStatusProcessing,
		Items:       []model.OrderItem{{ProductID: product.ID, Quantity: 2}},
		COD:         &model.CODDetails{Status: model.CODStatusNotShipped},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	updated, err := f.facade.UpdateCODStatus(context.Background(), order.ID, model.CODStatusPickedUp)
	if err != nil {
		t.Fatalf("update cod status: %v", err)
	}
	if updated.Status != model.OrderStatusDelivered || !updated.IsPaid {
		t.Fatalf("pickup must settle the order, got %+v", updated)
	}

	if err := f.facade.DeleteOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if got := f.products.Products[product.ID].Quantity; got != 5 {
		t.Fatalf("stock after delete = %d, want 5", got)
	}
}

func TestFacadeReapUnpaid(t *testing.T) {
	f := newFacadeFixture()
	productID := f.products.Add(model.Product{Name: "Honung", OfferPrice: 100, Quantity: 5})

	stale, err := f.orders.Place(context.Background(), &model.Order{
		UserID:      uuid.New(),
		PaymentType: model.PaymentTypeOnline,
		Status:      model.OrderStatusAwaitingPayment,
		Items:       []model.OrderItem{{ProductID: productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	stale.CreatedAt = time.Now().Add(-48 * time.Hour)

	reaped, err := f.facade.ReapUnpaid(context.Background(), time.Now().Add(-24*time.Hour), 10)
	if err != nil {
		t.Fatalf("reap: %v", err)
	}
	if reaped != 1 {
		t.Fatalf("reaped = %d, want 1", reaped)
	}
}
