package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentBackend stores each collection as one jsonb row, keeping the
// whole-document rewrite semantics of the file backend.
type DocumentBackend struct {
	DB *pgxpool.Pool
}

// NewDocumentBackend returns a backend over pool. Call Migrate once before use.
func NewDocumentBackend(pool *pgxpool.Pool) *DocumentBackend {
	return &DocumentBackend{DB: pool}
}

// Migrate creates the collection_document table if needed.
func (b *DocumentBackend) Migrate(ctx context.Context) error {
	_, err := b.DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collection_document (
			name       text PRIMARY KEY,
			body       jsonb NOT NULL DEFAULT '[]'::jsonb,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate collection_document: %w", err)
	}
	return nil
}

// Load returns the stored document, or nil when the row is absent.
func (b *DocumentBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := b.DB.QueryRow(ctx,
		`SELECT body::text FROM collection_document WHERE name = $1`, name,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return body, nil
}

// Save upserts the document.
func (b *DocumentBackend) Save(ctx context.Context, name string, data []byte) error {
	_, err := b.DB.Exec(ctx, `
		INSERT INTO collection_document (name, body, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET
			body       = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at
	`, name, string(data))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// Ensure inserts an empty document when none exists.
func (b *DocumentBackend) Ensure(ctx context.Context, name string) (bool, error) {
	tag, err := b.DB.Exec(ctx, `
		INSERT INTO collection_document (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		return false, fmt.Errorf("failed to ensure %s: %w", name, err)
	}
	return tag.RowsAffected() == 1, nil
}
