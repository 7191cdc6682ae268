package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

func newTestHandler(t *testing.T, repo shortener.Repository) *handlers.LinkHandler {
	t.Helper()

	gen, err := shortener.NewCodeGenerator()
	require.NoError(t, err)

	return handlers.NewLinkHandler(
		shortener.NewService(repo, gen),
		"http://localhost:8888",
		noopPublish[analytics.LinkCreatedEvent](),
		noopPublish[analytics.LinkVisitedEvent](),
		zap.NewNop(),
	)
}

func newTestHandlerWithPublishError(t *testing.T, repo shortener.Repository) *handlers.LinkHandler {
	t.Helper()

	gen, err := shortener.NewCodeGenerator()
	require.NoError(t, err)

	return handlers.NewLinkHandler(
		shortener.NewService(repo, gen),
		"http://localhost:8888",
		errorPublish[analytics.LinkCreatedEvent](errors.New("publish error")),
		errorPublish[analytics.LinkVisitedEvent](errors.New("publish error")),
		zap.NewNop(),
	)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)

	return statusErr.GetStatus()
}

func TestCreateShortLink(t *testing.T) {
	t.Run("creates short link successfully", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.ShortenRequest{}
		req.Body.Locator = "https://example.com/very/long/path"

		resp, err := handler.CreateShortLink(context.Background(), req)

		require.NoError(t, err)
		assert.Len(t, resp.Body.Code, shortener.CodeLength)
		assert.Equal(t, "https://example.com/very/long/path", resp.Body.Locator)
		assert.Contains(t, resp.Body.ShortURL, resp.Body.Code)
		assert.Equal(t, resp.Body.ShortURL, resp.Headers.Location)
	})

	t.Run("returns same code for equivalent locators", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req1 := &handlers.ShortenRequest{}
		req1.Body.Locator = "https://example.com/path/"

		req2 := &handlers.ShortenRequest{}
		req2.Body.Locator = "https://example.com/path"

		resp1, err1 := handler.CreateShortLink(context.Background(), req1)
		resp2, err2 := handler.CreateShortLink(context.Background(), req2)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, resp1.Body.Code, resp2.Body.Code)
	})

	t.Run("returns different codes for different locators", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req1 := &handlers.ShortenRequest{}
		req1.Body.Locator = "https://example.com/path1"

		req2 := &handlers.ShortenRequest{}
		req2.Body.Locator = "https://example.com/path2"

		resp1, err1 := handler.CreateShortLink(context.Background(), req1)
		resp2, err2 := handler.CreateShortLink(context.Background(), req2)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, resp1.Body.Code, resp2.Body.Code)
	})

	t.Run("rejects invalid locators with 422", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		for _, locator := range []string{
			"",
			"not a url",
			"http://example.com",
			"https://localhost",
			"https://192.168.1.1",
		} {
			req := &handlers.ShortenRequest{}
			req.Body.Locator = locator

			resp, err := handler.CreateShortLink(context.Background(), req)

			assert.Nil(t, resp, locator)
			require.Error(t, err, locator)
			assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err), locator)
		}
	})

	t.Run("maps store outage to 503", func(t *testing.T) {
		repo := &mockStore{findAllErr: shortener.ErrStoreUnavailable}
		handler := newTestHandler(t, repo)

		req := &handlers.ShortenRequest{}
		req.Body.Locator = testLocator

		resp, err := handler.CreateShortLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
	})

	t.Run("returns 500 when save fails", func(t *testing.T) {
		repo := &mockStore{saveErr: errMock}
		handler := newTestHandler(t, repo)

		req := &handlers.ShortenRequest{}
		req.Body.Locator = testLocator

		resp, err := handler.CreateShortLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		handler := newTestHandlerWithPublishError(t, store.NewMemoryStore())

		req := &handlers.ShortenRequest{}
		req.Body.Locator = testLocator

		resp, err := handler.CreateShortLink(context.Background(), req)

		// Publish errors are logged, not returned
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body.Code)
	})
}

func TestRedirectToLink(t *testing.T) {
	t.Run("redirects to original locator", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_ = memStore.Save(context.Background(), &shortener.Link{
			ShortCode: "Ab3xY9Qz",
			Locator:   testLocator,
		})
		handler := newTestHandler(t, memStore)

		req := &handlers.RedirectRequest{Code: "Ab3xY9Qz"}

		resp, err := handler.RedirectToLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
		assert.Equal(t, testLocator, resp.Headers.Location)
	})

	t.Run("records the visit before redirecting", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_ = memStore.Save(context.Background(), &shortener.Link{
			ShortCode: "Ab3xY9Qz",
			Locator:   testLocator,
		})
		handler := newTestHandler(t, memStore)

		req := &handlers.RedirectRequest{Code: "Ab3xY9Qz"}

		_, err := handler.RedirectToLink(context.Background(), req)
		require.NoError(t, err)

		count, err := memStore.CountVisits(context.Background(), "Ab3xY9Qz")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("returns 404 when code not found", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.RedirectRequest{Code: "notfound"}

		resp, err := handler.RedirectToLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("returns 500 on store error", func(t *testing.T) {
		repo := &mockStore{findByCodeErr: errMock}
		handler := newTestHandler(t, repo)

		req := &handlers.RedirectRequest{Code: "Ab3xY9Qz"}

		resp, err := handler.RedirectToLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("fails when the visit cannot be recorded", func(t *testing.T) {
		repo := &mockStore{
			links:     []*shortener.Link{{ShortCode: "Ab3xY9Qz", Locator: testLocator}},
			recordErr: errMock,
		}
		handler := newTestHandler(t, repo)

		req := &handlers.RedirectRequest{Code: "Ab3xY9Qz"}

		resp, err := handler.RedirectToLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Error(t, err)
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_ = memStore.Save(context.Background(), &shortener.Link{
			ShortCode: "Ab3xY9Qz",
			Locator:   testLocator,
		})
		handler := newTestHandlerWithPublishError(t, memStore)

		req := &handlers.RedirectRequest{Code: "Ab3xY9Qz"}

		resp, err := handler.RedirectToLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
	})
}

func TestGetLinkStats(t *testing.T) {
	t.Run("returns link with visit count", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		_ = memStore.Save(context.Background(), &shortener.Link{
			ShortCode: "Ab3xY9Qz",
			Locator:   testLocator,
		})
		handler := newTestHandler(t, memStore)

		// Two resolutions, two visits
		for i := 0; i < 2; i++ {
			_, err := handler.RedirectToLink(context.Background(), &handlers.RedirectRequest{Code: "Ab3xY9Qz"})
			require.NoError(t, err)
		}

		resp, err := handler.GetLinkStats(context.Background(), &handlers.StatsRequest{Code: "Ab3xY9Qz"})

		require.NoError(t, err)
		assert.Equal(t, "Ab3xY9Qz", resp.Body.Code)
		assert.Equal(t, testLocator, resp.Body.Locator)
		assert.Equal(t, int64(2), resp.Body.VisitCount)
	})

	t.Run("returns 404 when code not found", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		resp, err := handler.GetLinkStats(context.Background(), &handlers.StatsRequest{Code: "notfound"})

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}

func TestContextWithRequestMeta(t *testing.T) {
	t.Run("adds and retrieves request metadata from context", func(t *testing.T) {
		meta := handlers.RequestMeta{
			ClientIP:  "203.0.113.7",
			UserAgent: "TestAgent/1.0",
			Referrer:  "https://referrer.com",
		}
		ctx := handlers.ContextWithRequestMeta(context.Background(), meta)

		retrieved := handlers.RequestMetaFromContext(ctx)
		assert.Equal(t, meta, retrieved)
	})

	t.Run("returns zero value when metadata absent", func(t *testing.T) {
		retrieved := handlers.RequestMetaFromContext(context.Background())
		assert.Equal(t, handlers.RequestMeta{}, retrieved)
	})
}
