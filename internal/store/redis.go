package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorty/internal/metrics"
	"github.com/serroba/shorty/internal/shortener"
)

const secondsPerDay = 24 * 60 * 60

// RedisStore keeps day counters and URL records as plain Redis string keys.
type RedisStore struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
		now:       time.Now,
	}
}

func (r *RedisStore) Increment(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, unavailable("increment", err)
	}

	return n, nil
}

// Put writes every present field in one pipeline. With a TTL, each key gets the same
// absolute expiry computed once at write time.
func (r *RedisStore) Put(ctx context.Context, hash shortener.Hash, record *shortener.Record, ttlDays int) error {
	var expireAt time.Time
	if ttlDays > 0 {
		expireAt = time.Unix(r.now().Unix()+int64(ttlDays)*secondsPerDay, 0)
	}

	pipe := r.client.Pipeline()
	set := func(key, value string) {
		pipe.Set(ctx, key, value, 0)

		if !expireAt.IsZero() {
			pipe.ExpireAt(ctx, key, expireAt)
		}
	}

	set(shortener.RecordKey(r.namespace, hash), record.LongURL)

	for _, f := range shortener.OptionalFields {
		if v := record.Get(f); v != "" {
			set(shortener.FieldKey(r.namespace, hash, f), v)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("put", err)
	}

	return nil
}

func (r *RedisStore) GetPrimary(ctx context.Context, hash shortener.Hash) (string, error) {
	url, err := r.client.Get(ctx, shortener.RecordKey(r.namespace, hash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", unavailable("get_primary", err)
	}

	return url, nil
}

// GetAll reads the primary key and the four optional keys in one pipeline.
func (r *RedisStore) GetAll(ctx context.Context, hash shortener.Hash) (*shortener.Record, error) {
	pipe := r.client.Pipeline()
	primary := pipe.Get(ctx, shortener.RecordKey(r.namespace, hash))

	optional := make([]*redis.StringCmd, len(shortener.OptionalFields))
	for i, f := range shortener.OptionalFields {
		optional[i] = pipe.Get(ctx, shortener.FieldKey(r.namespace, hash, f))
	}

	// Exec reports redis.Nil when any key is missing, which is expected here.
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, unavailable("get_all", err)
	}

	record := &shortener.Record{}

	var err error
	if record.LongURL, err = valueOf(primary); err != nil {
		return nil, unavailable("get_all", err)
	}

	for i, f := range shortener.OptionalFields {
		v, err := valueOf(optional[i])
		if err != nil {
			return nil, unavailable("get_all", err)
		}

		record.Set(f, v)
	}

	return record, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func valueOf(cmd *redis.StringCmd) (string, error) {
	v, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	return v, err
}

func unavailable(operation string, err error) error {
	metrics.RecordStoreError(operation)

	return fmt.Errorf("%w: %s: %w", shortener.ErrStoreUnavailable, operation, err)
}
