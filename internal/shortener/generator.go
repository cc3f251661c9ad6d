package shortener

import (
	"context"
	"fmt"
	"time"

	"github.com/serroba/shorty/internal/metrics"
)

const secondsPerDay = 86400

// Encoder turns a (day, sequence) pair into a hash.
type Encoder interface {
	Encode(day, seq uint64) (string, error)
}

// Clock returns the current time.
type Clock func() time.Time

// Generator issues hashes that are unique across every instance sharing a CounterStore.
//
// Each call reads the clock once, increments the counter of that UTC day and encodes the
// pair. Uniqueness holds as long as the counters are never reset and the salt never changes.
type Generator struct {
	counter   CounterStore
	codec     Encoder
	namespace string
	now       Clock
}

// NewGenerator creates a generator. A nil clock uses time.Now.
func NewGenerator(counter CounterStore, codec Encoder, namespace string, now Clock) *Generator {
	if now == nil {
		now = time.Now
	}

	return &Generator{
		counter:   counter,
		codec:     codec,
		namespace: namespace,
		now:       now,
	}
}

// DayIndex is the number of whole days since the Unix epoch.
func DayIndex(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

// Generate returns a fresh hash. The counter is consumed even if the caller never stores it.
func (g *Generator) Generate(ctx context.Context) (Hash, error) {
	day := DayIndex(g.now())

	seq, err := g.counter.Increment(ctx, CounterKey(g.namespace, day))
	if err != nil {
		return "", fmt.Errorf("increment day counter: %w", err)
	}

	hash, err := g.codec.Encode(uint64(day), uint64(seq))
	if err != nil {
		return "", fmt.Errorf("encode hash: %w", err)
	}

	metrics.RecordHashGenerated()

	return Hash(hash), nil
}
