package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorty/internal/metrics"
	"github.com/serroba/shorty/internal/ratelimit"
	"go.uber.org/zap"
)

const customScope = "route"

// RateLimiter applies the limiter's policy to every operation.
//
// Operations configure themselves through ratelimit.MetadataKey metadata:
//   - Disabled skips limiting
//   - Scope picks the policy scope charged besides the global one
//   - Limits replaces the policy for that route
func RateLimiter(
	api huma.API,
	limiter *ratelimit.PolicyLimiter,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		cfg := ratelimit.EndpointConfigOf(op)

		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		var (
			allowed  bool
			exceeded *ratelimit.LimitExceeded
			err      error
		)

		key := clientKey(ctx)

		if cfg != nil && len(cfg.Limits) > 0 {
			allowed, exceeded, err = limiter.AllowCustom(ctx.Context(), key, operationPath(op), cfg.Limits)
			if exceeded != nil {
				exceeded.Scope = customScope
			}
		} else {
			allowed, exceeded, err = limiter.Allow(ctx.Context(), key, ratelimit.ScopesFor(op, ctx.Method()))
		}

		if err != nil {
			logger.Error("rate limit check failed", zap.String("path", operationPath(op)), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			reject(api, ctx, exceeded, logger)

			return
		}

		next(ctx)
	}
}

func operationPath(op *huma.Operation) string {
	if op == nil {
		return ""
	}

	return op.Path
}

func reject(api huma.API, ctx huma.Context, exceeded *ratelimit.LimitExceeded, logger *zap.Logger) {
	msg := "rate limit exceeded"
	scope := "unknown"

	if exceeded != nil {
		scope = string(exceeded.Scope)
		msg = fmt.Sprintf("rate limit exceeded: %s scope, %d/%d requests in %s",
			exceeded.Scope, exceeded.Count, exceeded.Config.Max, exceeded.Config.Window)

		ctx.SetHeader("Retry-After", strconv.Itoa(int(exceeded.Config.Window.Seconds())))

		logger.Warn("rate limit exceeded",
			zap.String("path", operationPath(ctx.Operation())),
			zap.String("scope", scope),
			zap.Int64("count", exceeded.Count),
			zap.Int64("max", exceeded.Config.Max),
			zap.Duration("window", exceeded.Config.Window),
			zap.String("client_ip", clientIP(ctx)),
		)
	}

	metrics.RecordRateLimited(scope)

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)
}
