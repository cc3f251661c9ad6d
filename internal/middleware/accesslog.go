package middleware

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorty/internal/handlers"
	"github.com/serroba/shorty/internal/metrics"
	"go.uber.org/zap"
)

// AccessLog logs every handled request and observes its latency. Route is the operation's
// path template so metrics do not grow a label per hash.
func AccessLog(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		elapsed := time.Since(start)
		status := ctx.Status()

		route := ""
		if op := ctx.Operation(); op != nil {
			route = op.Path
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		u := ctx.URL()
		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", u.Path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", handlers.RequestMetaFromContext(ctx.Context()).RequestID),
			zap.String("client_ip", clientIP(ctx)),
		}

		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
