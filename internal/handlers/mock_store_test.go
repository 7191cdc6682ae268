package handlers_test

import (
	"context"
	"errors"

	"github.com/serroba/shortlink/internal/shortener"
)

var errMock = errors.New("mock error")

const testLocator = "https://example.com"

// mockStore is a test double for shortener.Repository that can be
// configured to return errors.
type mockStore struct {
	saveErr       error
	findByCodeErr error
	findAllErr    error
	recordErr     error
	countErr      error
	links         []*shortener.Link
}

func (m *mockStore) Save(_ context.Context, link *shortener.Link) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.links = append(m.links, link)

	return nil
}

func (m *mockStore) FindByShortCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	if m.findByCodeErr != nil {
		return nil, m.findByCodeErr
	}

	for _, link := range m.links {
		if link.ShortCode == code {
			return link, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *mockStore) FindAll(_ context.Context) ([]*shortener.Link, error) {
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}

	return m.links, nil
}

func (m *mockStore) RecordVisit(_ context.Context, _ shortener.Code, _ string) error {
	return m.recordErr
}

func (m *mockStore) CountVisits(_ context.Context, _ shortener.Code) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}

	return int64(len(m.links)), nil
}
