// Package ratelimit counts requests per client and scope against configured windows.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key.
type Store interface {
	// Record registers one hit on key and returns the number of hits inside the current window.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
