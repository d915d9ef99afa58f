package registry

import (
	"context"
	"errors"

	"github.com/codekettle/shorturl/codegen"
	"github.com/codekettle/shorturl/internal/errx"
)

const (
	// MinCodeSpace is the smallest upper bound for code generation.
	MinCodeSpace = 1000

	// CodeSpaceFactor scales the upper bound with the number of stored
	// entries, keeping the random space sparse as the table grows.
	CodeSpaceFactor = 1000

	// DefaultMaxAttempts caps collision retries during code generation.
	// Hitting the cap means the space has become too dense relative to its
	// upper bound, which is a policy failure rather than bad luck.
	DefaultMaxAttempts = 100
)

// Service defines the registry operations: collision-free assignment of
// numeric short codes and lookup by code.
type Service interface {
	// Register returns the entry for the given normalized URL, minting a
	// new short code if the URL is not yet known. The second return value
	// reports whether a new entry was created; repeated registrations of
	// the same URL return the existing entry unchanged.
	Register(ctx context.Context, normalizedURL string) (Entry, bool, error)

	// Lookup returns the entry with the given short code, or a NotFound
	// error if no such code was ever assigned.
	Lookup(ctx context.Context, code int64) (Entry, error)
}

// service implements the Service interface.
type service struct {
	repo        Repository
	codes       codegen.Generator
	maxAttempts int
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	Codes       codegen.Generator
	MaxAttempts int // collision retries before giving up (default: 100)
}

// NewService creates a new service instance.
func NewService(repo Repository, config *ServiceConfig) Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	codes := config.Codes
	if codes == nil {
		codes = codegen.NewRandom()
	}

	attempts := config.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	return &service{
		repo:        repo,
		codes:       codes,
		maxAttempts: attempts,
	}
}

// Register is idempotent for a given URL: the URL-to-code mapping stays
// stable across repeated submissions. Codes are drawn at random from
// [1, max(MinCodeSpace, count*CodeSpaceFactor)], so they are neither
// sequential nor dense; gaps are expected.
func (s *service) Register(ctx context.Context, normalizedURL string) (Entry, bool, error) {
	const op = "registry.service.Register"

	if normalizedURL == "" {
		return Entry{}, false, errx.E(op, errx.Invalid, errors.New("url cannot be empty"))
	}

	existing, err := s.repo.GetByURL(ctx, normalizedURL)
	if err == nil {
		return existing, false, nil
	}
	if errx.KindOf(err) != errx.NotFound {
		return Entry{}, false, errx.E(op, errx.KindOf(err), err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return Entry{}, false, errx.E(op, errx.KindOf(err), err)
	}

	upper := count * CodeSpaceFactor
	if upper < MinCodeSpace {
		upper = MinCodeSpace
	}

	for range s.maxAttempts {
		code, err := s.codes.Pick(upper)
		if err != nil {
			return Entry{}, false, errx.E(op, errx.Unavailable, err)
		}

		created, err := s.repo.Create(ctx, Entry{
			OriginalURL: normalizedURL,
			ShortCode:   code,
		})
		if err == nil {
			return created, true, nil
		}

		// A concurrent registration of the same URL won the race; its
		// entry is the canonical one.
		if errors.Is(err, ErrURLExists) {
			winner, getErr := s.repo.GetByURL(ctx, normalizedURL)
			if getErr != nil {
				return Entry{}, false, errx.E(op, errx.KindOf(getErr), getErr)
			}
			return winner, false, nil
		}

		// Retry on code collision, fail on anything else.
		if !errors.Is(err, ErrCodeTaken) {
			return Entry{}, false, errx.E(op, errx.KindOf(err), err)
		}
	}

	return Entry{}, false, errx.E(op, errx.Exhausted, ErrCodeSpaceExhausted)
}

func (s *service) Lookup(ctx context.Context, code int64) (Entry, error) {
	const op = "registry.service.Lookup"

	if code <= 0 {
		return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
	}

	entry, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return Entry{}, errx.E(op, errx.KindOf(err), err)
	}
	return entry, nil
}
