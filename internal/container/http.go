package container

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shorty/internal/handlers"
	"github.com/serroba/shorty/internal/health"
	"github.com/serroba/shorty/internal/middleware"
	"github.com/serroba/shorty/internal/ratelimit"
	"github.com/serroba/shorty/internal/shortener"
	"go.uber.org/zap"
)

const requestIDLength = 16

// HTTPPackage provides the chi router and the huma API with every route registered.
// Documentation, health and metrics live under /_/ since '_' can never appear in a hash.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(chimiddleware.StripSlashes)
		router.Handle("/_/metrics", promhttp.Handler())

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		newID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, fmt.Errorf("create request id generator: %w", err)
		}

		pages, err := handlers.NewPages()
		if err != nil {
			return nil, err
		}

		config := huma.DefaultConfig("Shorty", "1.0.0")
		config.OpenAPIPath = "/_/openapi"
		config.DocsPath = "/_/docs"
		config.SchemasPath = "/_/schemas"

		api := humachi.New(router, config)
		api.UseMiddleware(
			middleware.RequestMeta(newID),
			middleware.AccessLog(logger.Named("access")),
		)

		if opts.RateLimit {
			limiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
			api.UseMiddleware(middleware.RateLimiter(api, limiter, logger.Named("ratelimit")))
		}

		health.RegisterRoutes(api, health.NewHandler(checkers(i, opts)))
		handlers.RegisterRoutes(api, handlers.NewURLHandler(
			do.MustInvoke[*shortener.Service](i),
			pages,
			logger.Named("http"),
		))

		return api, nil
	})
}

func checkers(i *do.Injector, opts *Options) map[string]health.Checker {
	out := map[string]health.Checker{}

	if opts.UsesRedis() {
		client := do.MustInvoke[*redis.Client](i)
		out["redis"] = health.CheckerFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	switch opts.Store {
	case StorePostgres:
		out["postgres"] = do.MustInvoke[*pgxpool.Pool](i)
	case StoreMemory:
		out["store"] = do.MustInvoke[Backend](i)
	}

	return out
}
