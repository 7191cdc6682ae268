package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// LinkHandler handles shortening and resolution operations.
type LinkHandler struct {
	service            *shortener.Service
	baseURL            string
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent]
	logger             *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *shortener.Service,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:            service,
		baseURL:            baseURL,
		publishLinkCreated: publishLinkCreated,
		publishLinkVisited: publishLinkVisited,
		logger:             logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata. ClientIP doubles as the
// originating-client tag attached to visits.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func (h *LinkHandler) CreateShortLink(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	link, err := h.service.Shorten(ctx, req.Body.Locator)
	if err != nil {
		return nil, h.mapError(err, req.Body.Locator)
	}

	// Publish telemetry; the durable record is already saved, so a
	// publish failure is logged and swallowed.
	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		Code:      string(link.ShortCode),
		Locator:   link.Locator,
		CreatedAt: link.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, link.ShortCode)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Code = string(link.ShortCode)
	resp.Body.ShortURL = shortURL
	resp.Body.Locator = link.Locator
	resp.Body.CreatedAt = link.CreatedAt

	return resp, nil
}

func (h *LinkHandler) RedirectToLink(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := RequestMetaFromContext(ctx)

	// The visit is recorded inside Resolve before the locator comes
	// back, so the redirect only goes out once the visit is durable.
	locator, err := h.service.Resolve(ctx, shortener.Code(req.Code), meta.ClientIP)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		return nil, h.mapError(err, req.Code)
	}

	event := &analytics.LinkVisitedEvent{
		Code:      req.Code,
		VisitedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	if err := h.publishLinkVisited(event); err != nil {
		h.logger.Error("failed to publish link visited event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = locator

	return resp, nil
}

func (h *LinkHandler) GetLinkStats(ctx context.Context, req *StatsRequest) (*StatsResponse, error) {
	stats, err := h.service.Stats(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		return nil, h.mapError(err, req.Code)
	}

	resp := &StatsResponse{}
	resp.Body.Code = string(stats.Link.ShortCode)
	resp.Body.Locator = stats.Link.Locator
	resp.Body.CreatedAt = stats.Link.CreatedAt
	resp.Body.VisitCount = stats.VisitCount

	return resp, nil
}

// mapError translates the core error taxonomy into HTTP semantics:
// input problems are the caller's to fix, store outages are "try
// later", everything else is a plain server error.
func (h *LinkHandler) mapError(err error, subject string) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidLocator):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, shortener.ErrStoreUnavailable), errors.Is(err, shortener.ErrStoreTimeout):
		h.logger.Error("store failure", zap.String("subject", subject), zap.Error(err))

		return huma.Error503ServiceUnavailable("storage temporarily unavailable")
	case errors.Is(err, shortener.ErrGenerationExhausted):
		h.logger.Error("code generation exhausted", zap.String("subject", subject))

		return huma.Error500InternalServerError("could not allocate a short code")
	default:
		h.logger.Error("unexpected error", zap.String("subject", subject), zap.Error(err))

		return huma.Error500InternalServerError("internal error")
	}
}
