package di

import (
	"go.uber.org/fx"

	"github.com/virebo/lanthandel/internal/adapter/notify"
	"github.com/virebo/lanthandel/internal/adapter/payment"
	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	"github.com/virebo/lanthandel/internal/app"
	"github.com/virebo/lanthandel/internal/config"
	"github.com/virebo/lanthandel/internal/logger"
	"github.com/virebo/lanthandel/internal/pkg/auth"
	"github.com/virebo/lanthandel/internal/server/http/handlers"
	"github.com/virebo/lanthandel/internal/server/http/router"
	"github.com/virebo/lanthandel/internal/storage/postgres"
	"github.com/virebo/lanthandel/internal/usecase"
)

// Module assembles the full application graph, with optional overrides for
// tests.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		notify.Module,
		statuscache.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
