package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	"github.com/virebo/lanthandel/internal/domain/model"
	pkgAuth "github.com/virebo/lanthandel/internal/pkg/auth"
	"github.com/virebo/lanthandel/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	SellerLogin(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (string, pkgAuth.Role, error)
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// CatalogFacade exposes catalog management to handlers.
type CatalogFacade interface {
	AddProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	Product(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	ChangeStock(ctx context.Context, id uuid.UUID, inStock bool, quantity int64) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CartFacade exposes cart persistence to handlers.
type CartFacade interface {
	Cart(ctx context.Context, userID uuid.UUID) (model.Cart, error)
	UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) (model.Cart, error)
}

// AddressFacade exposes delivery-address operations to handlers.
type AddressFacade interface {
	AddAddress(ctx context.Context, userID uuid.UUID, address *model.Address) (*model.Address, error)
	Addresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
}

// OrderFacade encapsulates checkout and order management exposed via HTTP.
type OrderFacade interface {
	PlaceCODOrder(ctx context.Context, userID uuid.UUID, items []usecase.CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*model.Order, error)
	PlaceOnlineOrder(ctx context.Context, userID uuid.UUID, items []usecase.CheckoutItem, addressID uuid.UUID, deliveryDate time.Time) (*usecase.CheckoutResult, error)
	UserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	OrderState(ctx context.Context, userID, id uuid.UUID) (*statuscache.OrderState, error)
}

// WebhookFacade processes signed provider events.
type WebhookFacade interface {
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	AddressFacade
	OrderFacade
	WebhookFacade
}
