package ratelimit

import "time"

// LimitConfig allows at most Max requests per Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps each scope to the limits enforced on it. A scope without limits is unrestricted.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// PolicyBuilder assembles a Policy.
type PolicyBuilder struct {
	policy *Policy
}

func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{policy: &Policy{Limits: make(map[Scope][]LimitConfig)}}
}

// AddLimit adds a limit to scope. Non-positive values are ignored so a zero option disables it.
func (b *PolicyBuilder) AddLimit(scope Scope, window time.Duration, maxRequests int64) *PolicyBuilder {
	if window <= 0 || maxRequests <= 0 {
		return b
	}

	b.policy.Limits[scope] = append(b.policy.Limits[scope], LimitConfig{Window: window, Max: maxRequests})

	return b
}

func (b *PolicyBuilder) Build() *Policy {
	return b.policy
}
