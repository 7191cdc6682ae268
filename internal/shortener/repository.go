package shortener

import "context"

// Repository is the persistence port consumed by the use cases. The
// core ships no durable implementation; adapters live in internal/store.
type Repository interface {
	// Save persists a new link. It returns ErrCodeTaken when the short
	// code already exists, letting the shorten loop treat a save-time
	// uniqueness violation exactly like a pre-check collision.
	Save(ctx context.Context, link *Link) error

	// FindByShortCode is a point lookup by the unique short code.
	// Returns ErrNotFound when no record exists.
	FindByShortCode(ctx context.Context, code Code) (*Link, error)

	// FindAll returns every stored link, newest first. The ordering is
	// cosmetic; the dedup scan only needs the full set.
	FindAll(ctx context.Context) ([]*Link, error)

	// RecordVisit appends a visit for code. Unknown codes are a no-op,
	// not an error.
	RecordVisit(ctx context.Context, code Code, clientTag string) error

	// CountVisits returns the aggregate visit count for code, 0 when
	// the code is unknown.
	CountVisits(ctx context.Context, code Code) (int64, error)
}
