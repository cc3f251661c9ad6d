package shortener

import "context"

// CounterStore is an atomic increment service shared by every instance of the service.
type CounterStore interface {
	// Increment atomically adds one to key and returns the new value. The first call returns 1.
	Increment(ctx context.Context, key string) (int64, error)
}

// RecordStore persists URL records as independent keys sharing a prefix.
//
// Writes are batched into one round trip but are not transactional: a failed Put may leave
// the primary key written without some optional keys.
type RecordStore interface {
	// Put writes the primary URL and every non-empty optional field. ttlDays > 0 gives every
	// written key the same absolute expiry; 0 means no expiry.
	Put(ctx context.Context, hash Hash, record *Record, ttlDays int) error
	// GetPrimary returns the primary URL or ErrNotFound.
	GetPrimary(ctx context.Context, hash Hash) (string, error)
	// GetAll reads all five keys in one round trip. Absent fields are empty.
	GetAll(ctx context.Context, hash Hash) (*Record, error)
}
