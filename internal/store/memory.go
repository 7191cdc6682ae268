package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository,
// used in tests and as a zero-dependency fallback.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shortener.Code]*shortener.Link
	order  []shortener.Code // insertion order, newest appended last
	visits map[shortener.Code][]shortener.Visit
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:  make(map[shortener.Code]*shortener.Link),
		visits: make(map[shortener.Code][]shortener.Visit),
	}
}

func (m *MemoryStore) Save(_ context.Context, link *shortener.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.ShortCode]; ok {
		return shortener.ErrCodeTaken
	}

	stored := *link
	m.links[link.ShortCode] = &stored
	m.order = append(m.order, link.ShortCode)

	return nil
}

func (m *MemoryStore) FindByShortCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	found := *link

	return &found, nil
}

func (m *MemoryStore) FindAll(_ context.Context) ([]*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]*shortener.Link, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		found := *m.links[m.order[i]]
		links = append(links, &found)
	}

	return links, nil
}

func (m *MemoryStore) RecordVisit(_ context.Context, code shortener.Code, clientTag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return nil
	}

	m.visits[code] = append(m.visits[code], shortener.Visit{
		ShortCode: link.ShortCode,
		ClientTag: clientTag,
	})

	return nil
}

func (m *MemoryStore) CountVisits(_ context.Context, code shortener.Code) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.visits[code])), nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
