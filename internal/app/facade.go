package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/pkg/auth"
	"github.com/virebo/lanthandel/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind the HTTP and worker
// surfaces.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	address  *usecase.AddressUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	address *usecase.AddressUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		address:  address,
		checkout: checkout,
		orders:   orders,
		payments: payments,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *StorefrontFacade) SellerLogin(ctx context.Context, email, password string) (string, error) {
	return f.auth.SellerLogin(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (string, auth.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *StorefrontFacade) AddProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.AddProduct(ctx, product)
}

func (f *StorefrontFacade) Product(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return f.catalog.GetProduct(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListProducts(ctx)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, product)
}

func (f *StorefrontFacade) ChangeStock(ctx context.Context, id uuid.UUID, inStock bool, quantity int64) (*model.Product, error) {
	return f.catalog.ChangeStock(ctx, id, inStock, quantity)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	return f.cart.Cart(ctx, userID)
}

func (f *StorefrontFacade) UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) (model.Cart, error) {
	return f.cart.UpdateCart(ctx, userID, cart)
}

func (f *StorefrontFacade) AddAddress(ctx context.Context, userID uuid.UUID, address *model.Address) (*model.Address, error) {
	return f.address.AddAddress(ctx, userID, address)
}

func (f *StorefrontFacade) Addresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return f.address.ListAddresses(ctx, userID)
}

func (f *StorefrontFacade) PlaceCODOrder(ctx context.Context, userID uuid.UUID, items []usecase.CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*model.Order, error) {
	return f.checkout.PlaceCODOrder(ctx, userID, items, addressID, deliveryDate)
}

func (f *StorefrontFacade) PlaceOnlineOrder(ctx context.Context, userID uuid.UUID, items []usecase.CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*usecase.CheckoutResult, error) {
	return f.checkout.PlaceOnlineOrder(ctx, userID, items, addressID, deliveryDate)
}

func (f *StorefrontFacade) UserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return f.orders.ListUserOrders(ctx, userID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAllOrders(ctx)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *StorefrontFacade) UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus) (*model.Order, error) {
	return f.orders.UpdateCODStatus(ctx, id, cod)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return f.orders.DeleteOrder(ctx, id)
}

func (f *StorefrontFacade) OrderState(ctx context.Context, userID, id uuid.UUID) (*statuscache.OrderState, error) {
	return f.orders.OrderState(ctx, userID, id)
}

func (f *StorefrontFacade) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	return f.payments.HandleWebhook(ctx, payload, sigHeader)
}

func (f *StorefrontFacade) ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	return f.orders.ReapUnpaid(ctx, cutoff, limit)
}
