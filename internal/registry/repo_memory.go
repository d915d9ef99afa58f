package registry

import (
	"context"
	"sync"
	"time"

	"github.com/codekettle/shorturl/internal/errx"
)

// memoryRepo is a map-backed Repository. It serializes writes behind a
// single lock, so the check-then-insert in Create is one critical section.
type memoryRepo struct {
	mu     sync.RWMutex
	byCode map[int64]Entry
	byURL  map[string]Entry
}

// NewMemoryRepository returns an in-memory Repository. Intended for tests
// and for running the service without any durable store configured.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		byCode: make(map[int64]Entry),
		byURL:  make(map[string]Entry),
	}
}

func (r *memoryRepo) Create(ctx context.Context, entry Entry) (Entry, error) {
	const op = "registry.memoryRepo.Create"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byURL[entry.OriginalURL]; ok {
		return Entry{}, errx.E(op, errx.Conflict, ErrURLExists)
	}
	if _, ok := r.byCode[entry.ShortCode]; ok {
		return Entry{}, errx.E(op, errx.Conflict, ErrCodeTaken)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.byCode[entry.ShortCode] = entry
	r.byURL[entry.OriginalURL] = entry
	return entry, nil
}

func (r *memoryRepo) GetByCode(ctx context.Context, code int64) (Entry, error) {
	const op = "registry.memoryRepo.GetByCode"

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byCode[code]
	if !ok {
		return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
	}
	return entry, nil
}

func (r *memoryRepo) GetByURL(ctx context.Context, originalURL string) (Entry, error) {
	const op = "registry.memoryRepo.GetByURL"

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byURL[originalURL]
	if !ok {
		return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
	}
	return entry, nil
}

func (r *memoryRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byCode)), nil
}
