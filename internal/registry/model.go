package registry

import "time"

// Entry is the unit of persistence: one registered URL and the numeric code
// assigned to it. Entries are append-only; nothing in the API mutates or
// deletes one once created.
type Entry struct {
	OriginalURL string
	ShortCode   int64
	CreatedAt   time.Time
}
