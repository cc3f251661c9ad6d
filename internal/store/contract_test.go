package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/serroba/shorty/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is what every store implementation offers the shortener.
type backend interface {
	shortener.CounterStore
	shortener.RecordStore
}

func fullRecord() *shortener.Record {
	return &shortener.Record{
		LongURL:            "https://example.com/page?q=1",
		AndroidURL:         "myapp://open/page",
		AndroidFallbackURL: "https://play.google.com/store/apps/details?id=app",
		IOSURL:             "myapp://open/page",
		IOSFallbackURL:     "https://apps.apple.com/app/id1",
	}
}

// runBackendContract checks the behavior shared by all backends. newBackend must return
// an empty store each call.
func runBackendContract(t *testing.T, newBackend func(t *testing.T) backend) {
	t.Helper()

	ctx := context.Background()

	t.Run("put then get all returns every field", func(t *testing.T) {
		s := newBackend(t)
		record := fullRecord()

		require.NoError(t, s.Put(ctx, "aB3dE", record, 0))

		got, err := s.GetAll(ctx, "aB3dE")
		require.NoError(t, err)
		assert.Equal(t, record, got)

		primary, err := s.GetPrimary(ctx, "aB3dE")
		require.NoError(t, err)
		assert.Equal(t, record.LongURL, primary)
	})

	t.Run("absent optional fields read back empty", func(t *testing.T) {
		s := newBackend(t)

		require.NoError(t, s.Put(ctx, "xY9", &shortener.Record{LongURL: "https://example.com"}, 0))

		got, err := s.GetAll(ctx, "xY9")
		require.NoError(t, err)
		assert.Equal(t, &shortener.Record{LongURL: "https://example.com"}, got)
	})

	t.Run("missing hash", func(t *testing.T) {
		s := newBackend(t)

		_, err := s.GetPrimary(ctx, "nope")
		require.ErrorIs(t, err, shortener.ErrNotFound)

		got, err := s.GetAll(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, got.Exists())
	})

	t.Run("increment starts at one and is per key", func(t *testing.T) {
		s := newBackend(t)

		for want := int64(1); want <= 3; want++ {
			n, err := s.Increment(ctx, "SHORT:HI:20000")
			require.NoError(t, err)
			assert.Equal(t, want, n)
		}

		n, err := s.Increment(ctx, "SHORT:HI:20001")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("concurrent increments never repeat", func(t *testing.T) {
		s := newBackend(t)

		const workers = 50

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int64]struct{}, workers)
		)

		for range workers {
			wg.Add(1)

			go func() {
				defer wg.Done()

				n, err := s.Increment(ctx, "SHORT:HI:20002")
				assert.NoError(t, err)

				mu.Lock()
				seen[n] = struct{}{}
				mu.Unlock()
			}()
		}

		wg.Wait()

		assert.Len(t, seen, workers)

		for i := int64(1); i <= workers; i++ {
			assert.Contains(t, seen, i)
		}
	})
}
