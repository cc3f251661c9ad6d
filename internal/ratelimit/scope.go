package ratelimit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Scope groups operations that share a budget.
type Scope string

const (
	ScopeGlobal Scope = "global"
	// ScopeRead covers lookups: expand and redirects.
	ScopeRead Scope = "read"
	// ScopeWrite covers operations that consume a hash.
	ScopeWrite Scope = "write"
)

// MetadataKey is the huma operation metadata key holding an EndpointConfig.
const MetadataKey = "rateLimit"

// EndpointConfig is attached to an operation through huma.Operation.Metadata.
//
// Scope selects which policy limits apply besides the global ones. Limits, when set,
// replace the policy for this operation. Disabled skips limiting entirely.
type EndpointConfig struct {
	Scope    Scope
	Limits   []LimitConfig
	Disabled bool
}

// EndpointConfigOf returns the operation's configuration, or nil when it has none.
func EndpointConfigOf(op *huma.Operation) *EndpointConfig {
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// ScopesFor returns the scopes charged for a request. The operation's configured scope
// wins; otherwise safe methods are reads and everything else is a write.
func ScopesFor(op *huma.Operation, method string) []Scope {
	if cfg := EndpointConfigOf(op); cfg != nil && cfg.Scope != "" {
		return []Scope{ScopeGlobal, cfg.Scope}
	}

	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return []Scope{ScopeGlobal, ScopeRead}
	default:
		return []Scope{ScopeGlobal, ScopeWrite}
	}
}
