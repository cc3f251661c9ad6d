package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shorty/internal/shortener"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) live(now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

// MemoryStore keeps counters and records in process memory with the same key layout and
// expiry semantics as the Redis backend.
type MemoryStore struct {
	mu        sync.Mutex
	namespace string
	entries   map[string]memoryEntry
	counters  map[string]int64
	now       func() time.Time
}

func NewMemoryStore(namespace string) *MemoryStore {
	return &MemoryStore{
		namespace: namespace,
		entries:   make(map[string]memoryEntry),
		counters:  make(map[string]int64),
		now:       time.Now,
	}
}

// WithClock replaces the clock used for expiry. It is meant for tests.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now

	return m
}

func (m *MemoryStore) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[key]++

	return m.counters[key], nil
}

func (m *MemoryStore) Put(_ context.Context, hash shortener.Hash, record *shortener.Record, ttlDays int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttlDays > 0 {
		expiresAt = m.now().Add(time.Duration(ttlDays) * 24 * time.Hour)
	}

	m.entries[shortener.RecordKey(m.namespace, hash)] = memoryEntry{value: record.LongURL, expiresAt: expiresAt}

	for _, f := range shortener.OptionalFields {
		if v := record.Get(f); v != "" {
			m.entries[shortener.FieldKey(m.namespace, hash, f)] = memoryEntry{value: v, expiresAt: expiresAt}
		}
	}

	return nil
}

func (m *MemoryStore) GetPrimary(_ context.Context, hash shortener.Hash) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.lookup(shortener.RecordKey(m.namespace, hash))
	if v == "" {
		return "", shortener.ErrNotFound
	}

	return v, nil
}

func (m *MemoryStore) GetAll(_ context.Context, hash shortener.Hash) (*shortener.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := &shortener.Record{LongURL: m.lookup(shortener.RecordKey(m.namespace, hash))}
	for _, f := range shortener.OptionalFields {
		record.Set(f, m.lookup(shortener.FieldKey(m.namespace, hash, f)))
	}

	return record, nil
}

// lookup returns the live value of key and evicts it once expired. Callers hold mu.
func (m *MemoryStore) lookup(key string) string {
	e, ok := m.entries[key]
	if !ok {
		return ""
	}

	if !e.live(m.now()) {
		delete(m.entries, key)

		return ""
	}

	return e.value
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
