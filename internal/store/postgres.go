package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shorty/internal/shortener"
)

// PostgresStore mirrors the Redis key layout in two tables: kv_entries for records and
// day_counters for the per-day sequences.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
	now       func() time.Time
}

func NewPostgresStore(pool *pgxpool.Pool, namespace string) *PostgresStore {
	return &PostgresStore{
		pool:      pool,
		namespace: namespace,
		now:       time.Now,
	}
}

func (p *PostgresStore) Increment(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO day_counters (key, value)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = day_counters.value + 1
		RETURNING value
	`

	var n int64
	if err := p.pool.QueryRow(ctx, query, key).Scan(&n); err != nil {
		return 0, unavailable("increment", err)
	}

	return n, nil
}

// Put sends one upsert per present field in a single batch round trip.
func (p *PostgresStore) Put(ctx context.Context, hash shortener.Hash, record *shortener.Record, ttlDays int) error {
	query := `
		INSERT INTO kv_entries (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`

	var expiresAt *time.Time
	if ttlDays > 0 {
		t := time.Unix(p.now().Unix()+int64(ttlDays)*secondsPerDay, 0).UTC()
		expiresAt = &t
	}

	batch := &pgx.Batch{}
	batch.Queue(query, shortener.RecordKey(p.namespace, hash), record.LongURL, expiresAt)

	for _, f := range shortener.OptionalFields {
		if v := record.Get(f); v != "" {
			batch.Queue(query, shortener.FieldKey(p.namespace, hash, f), v, expiresAt)
		}
	}

	if err := p.pool.SendBatch(ctx, batch).Close(); err != nil {
		return unavailable("put", err)
	}

	return nil
}

func (p *PostgresStore) GetPrimary(ctx context.Context, hash shortener.Hash) (string, error) {
	query := `
		SELECT value
		FROM kv_entries
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())
	`

	var url string

	err := p.pool.QueryRow(ctx, query, shortener.RecordKey(p.namespace, hash)).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shortener.ErrNotFound
		}

		return "", unavailable("get_primary", err)
	}

	return url, nil
}

// GetAll fetches the five keys of a record with one ANY($1) query.
func (p *PostgresStore) GetAll(ctx context.Context, hash shortener.Hash) (*shortener.Record, error) {
	query := `
		SELECT key, value
		FROM kv_entries
		WHERE key = ANY($1) AND (expires_at IS NULL OR expires_at > now())
	`

	primaryKey := shortener.RecordKey(p.namespace, hash)
	fields := map[string]shortener.Field{}
	keys := []string{primaryKey}

	for _, f := range shortener.OptionalFields {
		k := shortener.FieldKey(p.namespace, hash, f)
		fields[k] = f
		keys = append(keys, k)
	}

	rows, err := p.pool.Query(ctx, query, keys)
	if err != nil {
		return nil, unavailable("get_all", err)
	}
	defer rows.Close()

	record := &shortener.Record{}

	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, unavailable("get_all", err)
		}

		if key == primaryKey {
			record.LongURL = value

			continue
		}

		record.Set(fields[key], value)
	}

	if err = rows.Err(); err != nil {
		return nil, unavailable("get_all", err)
	}

	return record, nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, unavailable("purge_expired", err)
	}

	return tag.RowsAffected(), nil
}
