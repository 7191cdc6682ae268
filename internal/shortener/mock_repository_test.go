package shortener_test

import (
	"context"
	"errors"

	"github.com/serroba/shortlink/internal/shortener"
)

var errMock = errors.New("mock error")

// mockRepository is a configurable test double for shortener.Repository.
type mockRepository struct {
	saveErrs        []error // popped per Save call; nil entry means success
	findAllErr      error
	findByCodeErr   error
	countErr        error
	recordErr       error
	everyCodeTaken  bool
	links           []*shortener.Link
	findByCodeCalls int
	saveCalls       int
	lastVisitCode   shortener.Code
	lastVisitTag    string
}

func (m *mockRepository) Save(_ context.Context, link *shortener.Link) error {
	m.saveCalls++

	if len(m.saveErrs) > 0 {
		err := m.saveErrs[0]
		m.saveErrs = m.saveErrs[1:]

		if err != nil {
			return err
		}
	}

	m.links = append(m.links, link)

	return nil
}

func (m *mockRepository) FindByShortCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	m.findByCodeCalls++

	if m.findByCodeErr != nil {
		return nil, m.findByCodeErr
	}

	if m.everyCodeTaken {
		return &shortener.Link{ShortCode: code, Locator: "https://taken.example.com"}, nil
	}

	for _, link := range m.links {
		if link.ShortCode == code {
			return link, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *mockRepository) FindAll(_ context.Context) ([]*shortener.Link, error) {
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}

	return m.links, nil
}

func (m *mockRepository) RecordVisit(_ context.Context, code shortener.Code, clientTag string) error {
	if m.recordErr != nil {
		return m.recordErr
	}

	m.lastVisitCode = code
	m.lastVisitTag = clientTag

	return nil
}

func (m *mockRepository) CountVisits(_ context.Context, _ shortener.Code) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}

	return 0, nil
}
