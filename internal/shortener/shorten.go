package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// maxGenerateAttempts bounds the collision retry loop. An explicit
// counter keeps worst-case latency predictable; hitting the bound
// surfaces as ErrGenerationExhausted.
const maxGenerateAttempts = 10

// Service orchestrates validation, code generation, and persistence
// for the two core operations: shorten and resolve.
type Service struct {
	store        Repository
	generateCode CodeGenerator
	now          func() time.Time
}

// NewService creates a shortener service backed by the given repository
// and code generator.
func NewService(store Repository, generator CodeGenerator) *Service {
	return &Service{
		store:        store,
		generateCode: generator,
		now:          time.Now,
	}
}

// Shorten turns a raw locator into a persisted link with a unique short
// code. Shortening is idempotent: inputs that normalize to the same
// locator return the existing record and create nothing new.
func (s *Service) Shorten(ctx context.Context, rawLocator string) (*Link, error) {
	if err := Validate(rawLocator); err != nil {
		return nil, err
	}

	locator := Normalize(rawLocator)

	existing, err := s.findByLocator(ctx, locator)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code := Code(s.generateCode())

		_, err := s.store.FindByShortCode(ctx, code)
		if err == nil {
			continue // collision, try a fresh candidate
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("find by short code: %w", err)
		}

		link := &Link{
			Locator:   locator,
			ShortCode: code,
			CreatedAt: s.now(),
		}

		err = s.store.Save(ctx, link)
		if errors.Is(err, ErrCodeTaken) {
			// Lost the race for this code against a concurrent caller.
			// The store's uniqueness constraint is the final arbiter;
			// treat it as a collision and burn the attempt.
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("save link: %w", err)
		}

		return link, nil
	}

	return nil, ErrGenerationExhausted
}

// findByLocator scans all records for one matching the normalized
// locator. A linear scan is a correctness-over-efficiency choice that
// holds at small scale; a bigger deployment would put a uniqueness
// constraint on locator and catch the violation instead.
func (s *Service) findByLocator(ctx context.Context, locator string) (*Link, error) {
	links, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all links: %w", err)
	}

	for _, link := range links {
		if link.Locator == locator {
			return link, nil
		}
	}

	return nil, nil
}
