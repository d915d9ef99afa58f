package registry

import "context"

// Repository defines the persistence operations for Entry values. It
// abstracts the underlying data store; every implementation must make Create
// atomic with respect to both uniqueness checks, so two concurrent inserts
// can never both succeed for the same URL or the same code.
type Repository interface {
	// Create inserts the entry and returns it as stored. It fails with a
	// Conflict error wrapping ErrURLExists or ErrCodeTaken when a
	// uniqueness constraint is violated.
	Create(ctx context.Context, entry Entry) (Entry, error)

	// GetByCode returns the entry with the given short code, or NotFound.
	GetByCode(ctx context.Context, code int64) (Entry, error)

	// GetByURL returns the entry for the given original URL, or NotFound.
	GetByURL(ctx context.Context, originalURL string) (Entry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)
}
