package ratelimit

import (
	"context"
	"fmt"
)

// LimitExceeded describes the first limit a request broke.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter checks requests against a Policy.
type PolicyLimiter struct {
	store  Store
	policy *Policy
	prefix string
}

// NewPolicyLimiter creates a limiter whose store keys all start with prefix.
func NewPolicyLimiter(store Store, policy *Policy, prefix string) *PolicyLimiter {
	return &PolicyLimiter{
		store:  store,
		policy: policy,
		prefix: prefix,
	}
}

// Allow records the request under every limit of every scope and reports the first one
// exceeded. Limits are tracked independently per client, scope and window.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		for _, limit := range l.policy.Limits[scope] {
			ok, exceeded, err := l.check(ctx, fmt.Sprintf("%s:%s", clientKey, scope), limit)
			if err != nil || !ok {
				if exceeded != nil {
					exceeded.Scope = scope
				}

				return false, exceeded, err
			}
		}
	}

	return true, nil, nil
}

// AllowCustom applies limits that override the policy for a single route.
func (l *PolicyLimiter) AllowCustom(ctx context.Context, clientKey, route string, limits []LimitConfig) (bool, *LimitExceeded, error) {
	for _, limit := range limits {
		ok, exceeded, err := l.check(ctx, fmt.Sprintf("%s:route:%s", clientKey, route), limit)
		if err != nil || !ok {
			return false, exceeded, err
		}
	}

	return true, nil, nil
}

func (l *PolicyLimiter) check(ctx context.Context, key string, limit LimitConfig) (bool, *LimitExceeded, error) {
	key = fmt.Sprintf("%s%s:%d", l.prefix, key, limit.Window.Milliseconds())

	count, err := l.store.Record(ctx, key, limit.Window)
	if err != nil {
		return false, nil, fmt.Errorf("record rate limit hit: %w", err)
	}

	if count > limit.Max {
		return false, &LimitExceeded{Config: limit, Count: count}, nil
	}

	return true, nil, nil
}
