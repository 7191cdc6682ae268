package shortener

import (
	"context"
	"errors"
	"fmt"
)

// Resolve maps a short code back to its locator and records the visit.
// Absence surfaces as ErrNotFound; the caller decides what that means
// on the wire. The visit is written synchronously before returning, so
// a resolved locator is durably counted before the caller proceeds.
func (s *Service) Resolve(ctx context.Context, code Code, clientTag string) (string, error) {
	link, err := s.store.FindByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("find by short code: %w", err)
	}

	if err := s.store.RecordVisit(ctx, code, clientTag); err != nil {
		return "", fmt.Errorf("record visit: %w", err)
	}

	return link.Locator, nil
}

// LinkStats bundles a link with its derived visit count.
type LinkStats struct {
	Link       *Link
	VisitCount int64
}

// Stats returns the link for code together with its visit count.
func (s *Service) Stats(ctx context.Context, code Code) (*LinkStats, error) {
	link, err := s.store.FindByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find by short code: %w", err)
	}

	count, err := s.store.CountVisits(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}

	return &LinkStats{Link: link, VisitCount: count}, nil
}
