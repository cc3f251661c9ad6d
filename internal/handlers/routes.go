package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorty/internal/ratelimit"
)

// RegisterRoutes registers the shorten, expand and redirect operations.
// Shortening consumes a hash, so it is charged to the write scope.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "shorten",
		Method:      http.MethodGet,
		Path:        "/shorten",
		Summary:     "Create short URL",
		Description: "Issues a new hash for the long URL with optional Android and iOS app targets.",
		Tags:        []string{"URLs"},
		Errors:      []int{http.StatusBadRequest, http.StatusTooManyRequests},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeWrite},
		},
	}, urlHandler.Shorten)

	huma.Register(api, huma.Operation{
		OperationID: "expand",
		Method:      http.MethodGet,
		Path:        "/expand",
		Summary:     "Expand short URL",
		Description: "Returns the stored record of a short URL or hash.",
		Tags:        []string{"URLs"},
		Errors:      []int{http.StatusBadRequest, http.StatusTooManyRequests},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead},
		},
	}, urlHandler.Expand)

	// Registered last so the fixed paths above take precedence.
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{hash}",
		Summary:     "Follow short URL",
		Description: "Redirects to the long URL or serves an app interstitial for mobile devices.",
		Tags:        []string{"URLs"},
		Errors:      []int{http.StatusNotFound},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead},
		},
	}, urlHandler.Redirect)
}
