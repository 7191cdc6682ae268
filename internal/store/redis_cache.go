package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for the
// hot path, FindByShortCode. Dedup scans and visit accounting always
// hit the underlying store: a stale cache may cost a redirect a few
// milliseconds, but it must never miscount visits or split a locator
// across two codes.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

// Save stores a link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, link *shortener.Link) error {
	if err := r.store.Save(ctx, link); err != nil {
		return err
	}

	// Write-through: update cache after successful save
	r.cacheLink(ctx, link)

	return nil
}

// FindByShortCode retrieves a link by its code, checking cache first.
func (r *RedisCacheRepository) FindByShortCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		return link, nil
	}

	// Cache miss - fetch from store
	link, err := r.store.FindByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// FindAll always reads the underlying store; the dedup scan needs the
// authoritative record set.
func (r *RedisCacheRepository) FindAll(ctx context.Context) ([]*shortener.Link, error) {
	return r.store.FindAll(ctx)
}

// RecordVisit passes through to the underlying store so the visit is
// durably counted before the caller proceeds.
func (r *RedisCacheRepository) RecordVisit(ctx context.Context, code shortener.Code, clientTag string) error {
	return r.store.RecordVisit(ctx, code, clientTag)
}

// CountVisits passes through to the underlying store.
func (r *RedisCacheRepository) CountVisits(ctx context.Context, code shortener.Code) (int64, error) {
	return r.store.CountVisits(ctx, code)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos)
		}
	}

	return &shortener.Link{
		ShortCode: shortener.Code(result["short_code"]),
		Locator:   result["locator"],
		CreatedAt: createdAt,
	}, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.Link) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(link.ShortCode)

	pipe.HSet(ctx, key, map[string]interface{}{
		"short_code": string(link.ShortCode),
		"locator":    link.Locator,
		"created_at": link.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
