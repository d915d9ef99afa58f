package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/codekettle/shorturl/internal/errx"
)

func TestMemoryRepo_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, Entry{OriginalURL: "https://example.com", ShortCode: 10})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	byCode, err := repo.GetByCode(ctx, 10)
	if err != nil {
		t.Fatalf("GetByCode() error = %v", err)
	}
	if byCode.OriginalURL != "https://example.com" {
		t.Errorf("GetByCode().OriginalURL = %q", byCode.OriginalURL)
	}

	byURL, err := repo.GetByURL(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("GetByURL() error = %v", err)
	}
	if byURL.ShortCode != 10 {
		t.Errorf("GetByURL().ShortCode = %d, want 10", byURL.ShortCode)
	}
}

func TestMemoryRepo_Conflicts(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, Entry{OriginalURL: "https://example.com", ShortCode: 10}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name:    "duplicate url",
			entry:   Entry{OriginalURL: "https://example.com", ShortCode: 11},
			wantErr: ErrURLExists,
		},
		{
			name:    "duplicate code",
			entry:   Entry{OriginalURL: "https://example.org", ShortCode: 10},
			wantErr: ErrCodeTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.entry)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if kind := errx.KindOf(err); kind != errx.Conflict {
				t.Errorf("error kind = %v, want Conflict", kind)
			}
		})
	}

	// The failed inserts must not have changed the store.
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestMemoryRepo_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.GetByCode(ctx, 999999999); errx.KindOf(err) != errx.NotFound {
		t.Errorf("GetByCode() error = %v, want NotFound kind", err)
	}
	if _, err := repo.GetByURL(ctx, "https://nowhere.example"); errx.KindOf(err) != errx.NotFound {
		t.Errorf("GetByURL() error = %v, want NotFound kind", err)
	}
}

func TestMemoryRepo_ConcurrentCreates(t *testing.T) {
	// Concurrent inserts of the same URL: exactly one wins, the rest see a
	// Conflict. Uniqueness must hold under the race.
	repo := NewMemoryRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, Entry{
				OriginalURL: "https://example.com",
				ShortCode:   int64(100 + i),
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrURLExists) {
				t.Errorf("Create() error = %v, want ErrURLExists", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d concurrent creates succeeded, want exactly 1", wins)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestMemoryRepo_CountGrows(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := range 5 {
		url := fmt.Sprintf("https://example.com/%d", i)
		if _, err := repo.Create(ctx, Entry{OriginalURL: url, ShortCode: int64(i + 1)}); err != nil {
			t.Fatalf("Create(%d) error = %v", i, err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Count() = %d, want 5", n)
	}
}
