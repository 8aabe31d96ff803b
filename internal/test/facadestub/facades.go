// Package facadestub provides application-facade stubs for HTTP layer tests.
// It lives apart from the repository and adapter stubs because it depends on
// usecase types, which the usecase tests themselves cannot import indirectly.
package facadestub

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	"github.com/virebo/lanthandel/internal/domain/model"
	pkgAuth "github.com/virebo/lanthandel/internal/pkg/auth"
	"github.com/virebo/lanthandel/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	SellerLoginFn  func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, pkgAuth.Role, error)
	ProfileFn      func(context.Context, uuid.UUID) (*model.User, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return &model.User{ID: uuid.New(), Name: name, Email: email, Cart: model.Cart{}}, "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: uuid.New(), Email: email, Cart: model.Cart{}}, "token", nil
}

func (s AuthFacadeStub) SellerLogin(ctx context.Context, email, password string) (string, error) {
	if s.SellerLoginFn != nil {
		return s.SellerLoginFn(ctx, email, password)
	}
	return "seller-token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (string, pkgAuth.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return uuid.Nil.String(), pkgAuth.RoleCustomer, nil
}

func (s AuthFacadeStub) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Cart: model.Cart{}}, nil
}

// CatalogFacadeStub simulates catalog operations for HTTP tests.
type CatalogFacadeStub struct {
	AddFn         func(context.Context, *model.Product) (*model.Product, error)
	ProductFn     func(context.Context, uuid.UUID) (*model.Product, error)
	ProductsFn    func(context.Context) ([]model.Product, error)
	UpdateFn      func(context.Context, *model.Product) (*model.Product, error)
	ChangeStockFn func(context.Context, uuid.UUID, bool, int64) (*model.Product, error)
	DeleteFn      func(context.Context, uuid.UUID) error
}

func (s CatalogFacadeStub) AddProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, product)
	}
	created := *product
	created.ID = uuid.New()
	return &created, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Produkt"}, nil
}

func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: uuid.New(), Name: "Produkt"}}, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	return product, nil
}

func (s CatalogFacadeStub) ChangeStock(ctx context.Context, id uuid.UUID, inStock bool, quantity int64) (*model.Product, error) {
	if s.ChangeStockFn != nil {
		return s.ChangeStockFn(ctx, id, inStock, quantity)
	}
	return &model.Product{ID: id, Quantity: quantity, InStock: quantity > 0}, nil
}

func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// CartFacadeStub simulates cart sync.
type CartFacadeStub struct {
	CartFn   func(context.Context, uuid.UUID) (model.Cart, error)
	UpdateFn func(context.Context, uuid.UUID, model.Cart) (model.Cart, error)
}

func (s CartFacadeStub) Cart(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return model.Cart{}, nil
}

func (s CartFacadeStub) UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) (model.Cart, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, cart)
	}
	return cart.Normalize(), nil
}

// AddressFacadeStub simulates delivery-address operations.
type AddressFacadeStub struct {
	AddFn  func(context.Context, uuid.UUID, *model.Address) (*model.Address, error)
	ListFn func(context.Context, uuid.UUID) ([]model.Address, error)
}

func (s AddressFacadeStub) AddAddress(ctx context.Context, userID uuid.UUID, address *model.Address) (*model.Address, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, address)
	}
	created := *address
	created.ID = uuid.New()
	created.UserID = userID
	return &created, nil
}

func (s AddressFacadeStub) Addresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

// OrderFacadeStub simulates checkout and order management.
type OrderFacadeStub struct {
	PlaceCODFn        func(context.Context, uuid.UUID, []usecase.CheckoutItem, uuid.UUID, time.Time) (*model.Order, error)
	PlaceOnlineFn     func(context.Context, uuid.UUID, []usecase.CheckoutItem, uuid.UUID, time.Time) (*usecase.CheckoutResult, error)
	UserOrdersFn      func(context.Context, uuid.UUID) ([]model.Order, error)
	AllOrdersFn       func(context.Context) ([]model.Order, error)
	UpdateStatusFn    func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error)
	UpdateCODStatusFn func(context.Context, uuid.UUID, model.CODStatus) (*model.Order, error)
	DeleteFn          func(context.Context, uuid.UUID) error
	OrderStateFn      func(context.Context, uuid.UUID, uuid.UUID) (*statuscache.OrderState, error)
}

func (s OrderFacadeStub) PlaceCODOrder(ctx context.Context, userID uuid.UUID, items []usecase.CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*model.Order, error) {
	if s.PlaceCODFn != nil {
		return s.PlaceCODFn(ctx, userID, items, addressID, deliveryDate)
	}
	return &model.Order{ID: uuid.New(), UserID: userID, PaymentType: model.PaymentTypeCOD, Status: model.OrderStatusProcessing}, nil
}

func (s OrderFacadeStub) PlaceOnlineOrder(ctx context.Context, userID uuid.UUID, items []usecase.CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*usecase.CheckoutResult, error) {
	if s.PlaceOnlineFn != nil {
		return s.PlaceOnlineFn(ctx, userID, items, addressID, deliveryDate)
	}
	order := &model.Order{ID: uuid.New(), UserID: userID, PaymentType: model.PaymentTypeOnline, Status: model.OrderStatusAwaitingPayment}
	return &usecase.CheckoutResult{Order: order, RedirectURL: "https://pay.example/session"}, nil
}

func (s OrderFacadeStub) UserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	if s.UserOrdersFn != nil {
		return s.UserOrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return nil, nil
}

func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s OrderFacadeStub) UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus) (*model.Order, error) {
	if s.UpdateCODStatusFn != nil {
		return s.UpdateCODStatusFn(ctx, id, cod)
	}
	return &model.Order{ID: id, COD: &model.CODDetails{Status: cod}}, nil
}

func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s OrderFacadeStub) OrderState(ctx context.Context, userID, id uuid.UUID) (*statuscache.OrderState, error) {
	if s.OrderStateFn != nil {
		return s.OrderStateFn(ctx, userID, id)
	}
	return &statuscache.OrderState{Status: string(model.OrderStatusProcessing)}, nil
}

// WebhookFacadeStub simulates webhook processing.
type WebhookFacadeStub struct {
	HandleFn func(context.Context, []byte, string) error
}

func (s WebhookFacadeStub) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if s.HandleFn != nil {
		return s.HandleFn(ctx, payload, sigHeader)
	}
	return nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	AddressFacadeStub
	OrderFacadeStub
	WebhookFacadeStub
}
