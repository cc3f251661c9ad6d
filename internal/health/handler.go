// Package health reports whether the service's backing stores are reachable.
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorty/internal/ratelimit"
)

const pingTimeout = 2 * time.Second

// Checker is any dependency that can be pinged.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Handler pings every registered dependency.
type Handler struct {
	checkers map[string]Checker
}

// NewHandler creates a handler for the named dependencies, e.g. {"redis": client}.
func NewHandler(checkers map[string]Checker) *Handler {
	return &Handler{checkers: checkers}
}

// Response is "ok" when every dependency answers and "degraded" otherwise.
type Response struct {
	Body struct {
		Status string            `json:"status" enum:"ok,degraded"`
		Checks map[string]string `json:"checks"`
	}
}

func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Checks = make(map[string]string, len(h.checkers))

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := h.checkers[name].Ping(pingCtx)
		cancel()

		if err != nil {
			resp.Body.Checks[name] = "unhealthy"
			resp.Body.Status = "degraded"

			continue
		}

		resp.Body.Checks[name] = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers GET /_/health without rate limiting. The prefix keeps it clear of hashes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/_/health",
		Summary:     "Health check",
		Tags:        []string{"Operations"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
