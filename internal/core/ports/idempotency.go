package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

// IdempotencyRecord is a cached response for a previously processed request.
// Records are scoped by key, endpoint and request method so the same key
// replayed against a different operation is a distinct record.
type IdempotencyRecord struct {
	Key          string
	UserID       *kernel.UUID
	Endpoint     string
	Method       string
	StatusCode   int
	ResponseBody []byte
	ExpiresAt    time.Time
}

// IdempotencyStore defines the persistence contract for cached idempotent
// responses.
type IdempotencyStore interface {
	// Get retrieves a cached record by key, endpoint and method.
	// An expired record is discarded and treated as absent, so the
	// retried request can cache a fresh response under the same key.
	Get(ctx context.Context, key, endpoint, method string) (*IdempotencyRecord, error)

	// Save persists a cached response. A concurrent save of the same
	// key/endpoint/method returns a conflict error; callers may treat it
	// as benign.
	Save(ctx context.Context, record IdempotencyRecord) error

	// DeleteExpired removes all records whose expiry has passed and
	// returns the number of deleted rows.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
