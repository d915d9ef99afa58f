package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codekettle/shorturl/internal/errx"
)

// Named constraints so conflict mapping can tell a duplicate URL from a
// duplicate code.
const schema = `
CREATE TABLE IF NOT EXISTS urls (
	original_url TEXT NOT NULL,
	short_code   BIGINT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT urls_original_url_unique UNIQUE (original_url),
	CONSTRAINT urls_short_code_unique UNIQUE (short_code)
)`

// pgxRepo is a Repository backed by PostgreSQL. Uniqueness is enforced by
// the unique constraints, so concurrent inserts resolve at the database
// rather than in application code.
type pgxRepo struct {
	pool *pgxpool.Pool
}

// NewPgxRepository returns a Repository on the given pool, creating the
// urls table if it does not exist.
func NewPgxRepository(ctx context.Context, pool *pgxpool.Pool) (Repository, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure urls table: %w", err)
	}
	return &pgxRepo{pool: pool}, nil
}

func (r *pgxRepo) Create(ctx context.Context, entry Entry) (Entry, error) {
	const op = "registry.pgxRepo.Create"

	row := r.pool.QueryRow(ctx,
		`INSERT INTO urls (original_url, short_code)
		 VALUES ($1, $2)
		 RETURNING created_at`,
		entry.OriginalURL, entry.ShortCode)

	if err := row.Scan(&entry.CreatedAt); err != nil {
		switch {
		case isURLUniqueViolation(err):
			return Entry{}, errx.E(op, errx.Conflict, fmt.Errorf("%w: %w", ErrURLExists, err))
		case isCodeUniqueViolation(err):
			return Entry{}, errx.E(op, errx.Conflict, fmt.Errorf("%w: %w", ErrCodeTaken, err))
		default:
			return Entry{}, errx.E(op, errx.Unavailable, err)
		}
	}
	return entry, nil
}

func (r *pgxRepo) GetByCode(ctx context.Context, code int64) (Entry, error) {
	const op = "registry.pgxRepo.GetByCode"

	var entry Entry
	err := r.pool.QueryRow(ctx,
		`SELECT original_url, short_code, created_at FROM urls WHERE short_code = $1`,
		code).Scan(&entry.OriginalURL, &entry.ShortCode, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
		}
		return Entry{}, errx.E(op, errx.Unavailable, err)
	}
	return entry, nil
}

func (r *pgxRepo) GetByURL(ctx context.Context, originalURL string) (Entry, error) {
	const op = "registry.pgxRepo.GetByURL"

	var entry Entry
	err := r.pool.QueryRow(ctx,
		`SELECT original_url, short_code, created_at FROM urls WHERE original_url = $1`,
		originalURL).Scan(&entry.OriginalURL, &entry.ShortCode, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, errx.E(op, errx.NotFound, ErrEntryNotFound)
		}
		return Entry{}, errx.E(op, errx.Unavailable, err)
	}
	return entry, nil
}

func (r *pgxRepo) Count(ctx context.Context) (int64, error) {
	const op = "registry.pgxRepo.Count"

	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM urls`).Scan(&n); err != nil {
		return 0, errx.E(op, errx.Unavailable, err)
	}
	return n, nil
}
