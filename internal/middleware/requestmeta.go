package middleware

import (
	"regexp"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorty/internal/handlers"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// RequestMeta stores client IP, user agent and a request id in the request context and
// echoes the id back. An incoming X-Request-ID is reused when it looks sane.
func RequestMeta(newID func() string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(RequestIDHeader)
		if !validRequestID.MatchString(id) {
			id = newID()
		}

		ctx.SetHeader(RequestIDHeader, id)

		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			RequestID: id,
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}
