package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/codekettle/shorturl/internal/errx"
)

// entryRecord is the on-disk line format: one JSON object per entry,
// appended in registration order.
type entryRecord struct {
	OriginalURL string    `json:"original_url"`
	ShortURL    int64     `json:"short_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// fileRepo is a Repository backed by an append-only JSON-lines file. The
// whole file is loaded into maps at open; each Create appends one line and
// flushes it before returning. Writes share the memory repo's locking
// discipline: check-then-append is one critical section.
type fileRepo struct {
	mu     sync.RWMutex
	byCode map[int64]Entry
	byURL  map[string]Entry
	file   *os.File
	writer *bufio.Writer
}

// NewFileRepository opens (creating if absent) the store file at path and
// loads any existing entries.
func NewFileRepository(path string) (Repository, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}

	r := &fileRepo{
		byCode: make(map[int64]Entry),
		byURL:  make(map[string]Entry),
		file:   file,
		writer: bufio.NewWriter(file),
	}

	if err := r.load(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// load reads the whole file into the in-memory indexes. A corrupt line is
// fatal: the store refuses to start rather than silently dropping data.
func (r *fileRepo) load() error {
	scanner := bufio.NewScanner(r.file)
	for scanner.Scan() {
		var rec entryRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("corrupt store file: %w", err)
		}
		entry := Entry{
			OriginalURL: rec.OriginalURL,
			ShortCode:   rec.ShortURL,
			CreatedAt:   rec.CreatedAt,
		}
		r.byCode[entry.ShortCode] = entry
		r.byURL[entry.OriginalURL] = entry
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the underlying file.
func (r *fileRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writer.Flush(); err != nil {
		return err
	}
	return r.file.Close()
}

func (r *fileRepo) Create(ctx context.Context, entry Entry) (Entry, error) {
	const op = "registry.fileRepo.Create"

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

	rec := entryRecord{
		OriginalURL: entry.OriginalURL,
		ShortURL:    entry.ShortCode,
		CreatedAt:   entry.CreatedAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return Entry{}, errx.E(op, errx.Unavailable, err)
	}
	if _, err := r.writer.Write(data); err != nil {
		return Entry{}, errx.E(op, errx.Unavailable, err)
	}
	if err := r.writer.WriteByte('\n'); err != nil {
		return Entry{}, errx.E(op, errx.Unavailable, err)
	}
	if err := r.writer.Flush(); err != nil {
		return Entry{}, errx.E(op, errx.Unavailable, err)
	}

	r.byCode[entry.ShortCode] = entry
	r.byURL[entry.OriginalURL] = entry
	return entry, nil
}

func (r *fileRepo) GetByCode(ctx context.Context, code int64) (Entry, error) {
	const op = "registry.fileRepo.GetByCode"

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byCode[code]
	if !ok {
		return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
	}
	return entry, nil
}

func (r *fileRepo) GetByURL(ctx context.Context, originalURL string) (Entry, error) {
	const op = "registry.fileRepo.GetByURL"

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byURL[originalURL]
	if !ok {
		return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
	}
	return entry, nil
}

func (r *fileRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byCode)), nil
}
