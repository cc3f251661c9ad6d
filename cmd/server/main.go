package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shorty/internal/container"
	"github.com/serroba/shorty/internal/store"
	"go.uber.org/zap"
)

func registerPackages(injector *do.Injector, options *container.Options) {
	container.LoggerPackage(injector)

	if options.UsesRedis() {
		container.RedisPackage(injector)
		container.PublisherGroupPackage(injector)
	}

	if options.Store == container.StorePostgres {
		container.PostgresPackage(injector)
	}

	container.StorePackage(injector)
	container.CodecPackage(injector)
	container.ServicePackage(injector)
	container.RateLimitPackage(injector)
	container.HTTPPackage(injector)
}

func logParameters(logger *zap.Logger, options *container.Options) {
	password := "NO"
	if options.RedisPassword != "" {
		password = "YES"
	}

	logger.Info("starting with parameters",
		zap.Int("port", options.Port),
		zap.Bool("localhost_only", options.LocalhostOnly),
		zap.String("domain", options.Domain),
		zap.Int("min_hash_length", options.MinHashLength),
		zap.Int("ttl_days", options.TTLDays),
		zap.String("store", options.Store),
		zap.String("namespace", options.Namespace),
		zap.String("redis_addr", options.RedisAddr),
		zap.Int("redis_db", options.RedisDB),
		zap.String("redis_password", password),
		zap.Bool("events", options.Events),
		zap.Bool("rate_limit", options.RateLimit),
	)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := container.New(options)
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)
		closers := do.MustInvoke[*container.Closers](injector)

		var server *http.Server

		hooks.OnStart(func() {
			logParameters(logger, options)

			router := do.MustInvoke[*chi.Mux](injector)

			// Invoke API to trigger route registration
			_ = do.MustInvoke[huma.API](injector)

			if options.Store == container.StorePostgres {
				janitor := do.MustInvoke[*store.Janitor](injector)
				if err := janitor.Start(context.Background()); err != nil {
					logger.Fatal("janitor failed to start", zap.Error(err))
				}
			}

			host := ""
			if options.LocalhostOnly {
				host = "127.0.0.1"
			}

			server = &http.Server{
				Addr:              fmt.Sprintf("%s:%d", host, options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("server starting", zap.String("addr", server.Addr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			if err := closers.Close(); err != nil {
				logger.Error("client close error", zap.Error(err))
			}

			logger.Info("shutdown complete")
			_ = logger.Sync()
		})
	})

	cli.Run()
}
