package shortener

import (
	"errors"
	"fmt"
)

// ErrInvalidLocator is the root of all input validation failures.
// Every specific rule error wraps it, so callers can classify with
// errors.Is(err, ErrInvalidLocator) and map the whole family to a 4xx
// without knowing individual rules.
var ErrInvalidLocator = errors.New("invalid locator")

// Validation rule errors, in the order the rules are applied.
var (
	ErrEmptyLocator       = fmt.Errorf("%w: empty", ErrInvalidLocator)
	ErrMalformedLocator   = fmt.Errorf("%w: malformed", ErrInvalidLocator)
	ErrProtocolNotAllowed = fmt.Errorf("%w: only https is allowed", ErrInvalidLocator)
	ErrMissingHost        = fmt.Errorf("%w: missing host", ErrInvalidLocator)
	ErrPrivateOrLocalHost = fmt.Errorf("%w: private or local host", ErrInvalidLocator)
)

var (
	// ErrNotFound is returned when a short code has no record.
	// Absence is not a failure mode; callers decide the HTTP semantics.
	ErrNotFound = errors.New("short link not found")

	// ErrCodeTaken is returned by Repository.Save when the short code
	// already exists. The shorten loop treats it like a pre-check
	// collision and retries with a fresh candidate.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrGenerationExhausted is returned when every generated candidate
	// collided. With a 62^8 keyspace this is astronomically unlikely and
	// fatal only for the current call, never for the process.
	ErrGenerationExhausted = errors.New("short code generation exhausted")
)

// Store-layer failure classes. Adapters wrap these with the failing
// operation so the caller can tell "try later" from "fix your input".
var (
	ErrStoreTimeout     = errors.New("store operation timed out")
	ErrStoreUnavailable = errors.New("store unreachable")
)
