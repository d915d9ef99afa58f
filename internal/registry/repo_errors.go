package registry

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrURLExists signals that the original URL is already registered.
	ErrURLExists = errors.New("original url already registered")

	// ErrCodeTaken signals that the candidate short code is already in use.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrEntryNotFound signals that no entry matches the given key.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrCodeSpaceExhausted signals that code generation gave up after the
	// attempt cap. This means the random space has become too dense and is
	// a sizing-policy failure, not a transient condition.
	ErrCodeSpaceExhausted = errors.New("could not mint a unique short code")
)

const uniqueViolation = "23505"

func isURLUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == "urls_original_url_unique"
}

func isCodeUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == "urls_short_code_unique"
}
