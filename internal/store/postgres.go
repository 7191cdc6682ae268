package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
//
// Schema:
//
//	CREATE TABLE short_links (
//	    short_code TEXT PRIMARY KEY,
//	    locator    TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE visits (
//	    id         BIGSERIAL PRIMARY KEY,
//	    short_code TEXT NOT NULL REFERENCES short_links (short_code),
//	    client_tag TEXT,
//	    visited_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, link *shortener.Link) error {
	query := `
		INSERT INTO short_links (short_code, locator, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.pool.Exec(ctx, query,
		string(link.ShortCode),
		link.Locator,
		link.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortener.ErrCodeTaken
		}

		return storeError("save", err)
	}

	return nil
}

func (p *PostgresStore) FindByShortCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	query := `
		SELECT short_code, locator, created_at
		FROM short_links
		WHERE short_code = $1
	`

	var link shortener.Link

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&link.ShortCode,
		&link.Locator,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, storeError("find by short code", err)
	}

	return &link, nil
}

func (p *PostgresStore) FindAll(ctx context.Context) ([]*shortener.Link, error) {
	query := `
		SELECT short_code, locator, created_at
		FROM short_links
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, storeError("find all", err)
	}
	defer rows.Close()

	var links []*shortener.Link

	for rows.Next() {
		var link shortener.Link
		if err := rows.Scan(&link.ShortCode, &link.Locator, &link.CreatedAt); err != nil {
			return nil, storeError("find all", err)
		}

		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("find all", err)
	}

	return links, nil
}

func (p *PostgresStore) RecordVisit(ctx context.Context, code shortener.Code, clientTag string) error {
	// The WHERE EXISTS guard makes visits for unknown codes a silent
	// no-op instead of a foreign key violation.
	query := `
		INSERT INTO visits (short_code, client_tag)
		SELECT $1, NULLIF($2, '')
		WHERE EXISTS (SELECT 1 FROM short_links WHERE short_code = $1)
	`

	if _, err := p.pool.Exec(ctx, query, string(code), clientTag); err != nil {
		return storeError("record visit", err)
	}

	return nil
}

func (p *PostgresStore) CountVisits(ctx context.Context, code shortener.Code) (int64, error) {
	query := `SELECT count(*) FROM visits WHERE short_code = $1`

	var count int64
	if err := p.pool.QueryRow(ctx, query, string(code)).Scan(&count); err != nil {
		return 0, storeError("count visits", err)
	}

	return count, nil
}

// storeError classifies a driver failure into the port's taxonomy so
// callers can tell "try later" from everything else.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, shortener.ErrStoreTimeout)
	case isConnectError(err):
		return fmt.Errorf("%s: %w", op, shortener.ErrStoreUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isConnectError(err error) bool {
	var connectErr *pgconn.ConnectError

	return errors.As(err, &connectErr)
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
