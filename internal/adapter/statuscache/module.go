package statuscache

import (
	"context"

	"go.uber.org/fx"

	"github.com/virebo/lanthandel/internal/config"
)

// Module exposes the redis-backed store to the fx graph.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Provide(func(c *Cache) Store { return c }),
	fx.Invoke(registerLifecycle),
)

func newCache(cfg *config.Config) *Cache {
	return New(cfg.RedisAddr)
}

func registerLifecycle(lc fx.Lifecycle, cache *Cache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
}
