package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/virebo/lanthandel/internal/adapter/notify"
	"github.com/virebo/lanthandel/internal/adapter/payment"
	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	"github.com/virebo/lanthandel/internal/config"
	"github.com/virebo/lanthandel/internal/domain/repository"
	"github.com/virebo/lanthandel/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	newCheckoutUseCase,
	newPaymentUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewAddressUseCase,
	NewOrderUseCase,
)

type authParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   auth.PasswordHasher
	Strategy auth.Strategy
	Config   *config.Config
	Logger   *slog.Logger
}

func newAuthUseCase(p authParams) *AuthUseCase {
	seller := SellerCredentials{Email: p.Config.SellerEmail, Password: p.Config.SellerPassword}
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, seller, p.Logger)
}

type checkoutParams struct {
	fx.In

	Orders    repository.OrderRepository
	Addresses repository.AddressRepository
	Payments  payment.Client
	Notifier  notify.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Orders, p.Addresses, p.Payments, p.Notifier, p.Config.ClientURL, p.Logger)
}

type paymentParams struct {
	fx.In

	Orders   repository.OrderRepository
	Users    repository.UserRepository
	Cache    statuscache.Store
	Notifier notify.Publisher
	Config   *config.Config
	Logger   *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Orders, p.Users, p.Cache, p.Notifier, p.Config.PaymentWebhookSecret, p.Logger)
}
