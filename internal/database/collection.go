package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so collection
// helpers can run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Patch is a partial update merged shallowly into a stored document.
// Only the named fields are overwritten; everything else is untouched.
type Patch map[string]any

// Collection provides document-style CRUD over one JSONB table
// (id uuid, doc jsonb, created_at, updated_at). Records are stored
// whole in doc, including their id and timestamps, so a document read
// never needs to join columns back in.
type Collection[T any] struct {
	db    querier
	table string
}

// NewCollection creates a collection bound to a table.
func NewCollection[T any](db querier, table string) *Collection[T] {
	return &Collection[T]{db: db, table: table}
}

// Create inserts a new document.
func (c *Collection[T]) Create(ctx context.Context, id uuid.UUID, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", c.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	if _, err := c.db.Exec(ctx, query, id, raw); err != nil {
		return fmt.Errorf("insert into %s: %w", c.table, err)
	}
	return nil
}

// Get returns the document with the given id, or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)

	var raw []byte
	if err := c.db.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get from %s: %w", c.table, err)
	}
	return c.decode(raw)
}

// Update merges a patch into the stored document and returns the new
// full record, or ErrNotFound. The patch also bumps updatedAt.
func (c *Collection[T]) Update(ctx context.Context, id uuid.UUID, patch Patch) (*T, error) {
	merged := make(Patch, len(patch)+1)
	for k, v := range patch {
		merged[k] = v
	}
	merged["updatedAt"] = time.Now().UTC()

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("marshal %s patch: %w", c.table, err)
	}

	query := fmt.Sprintf(
		`UPDATE %s SET doc = doc || $2, updated_at = now() WHERE id = $1 RETURNING doc`,
		c.table,
	)

	var out []byte
	if err := c.db.QueryRow(ctx, query, id, raw).Scan(&out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s: %w", c.table, err)
	}
	return c.decode(out)
}

// Delete removes the document with the given id, or ErrNotFound.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)
	tag, err := c.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every document, newest first.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY created_at DESC`, c.table)
	return c.queryDocs(ctx, query)
}

// List returns one page of documents, newest first, with the total
// count across all pages.
func (c *Collection[T]) List(ctx context.Context, page, limit int) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, c.table)
	if err := c.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", c.table, err)
	}

	query := fmt.Sprintf(
		`SELECT doc FROM %s ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		c.table,
	)
	docs, err := c.queryDocs(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// FindByField returns the documents whose named top-level field equals
// the given value.
func (c *Collection[T]) FindByField(ctx context.Context, field string, value any) ([]T, error) {
	probe, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, fmt.Errorf("marshal %s probe: %w", c.table, err)
	}

	query := fmt.Sprintf(
		`SELECT doc FROM %s WHERE doc @> $1 ORDER BY created_at DESC`,
		c.table,
	)
	return c.queryDocs(ctx, query, probe)
}

func (c *Collection[T]) queryDocs(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := c.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.table, err)
	}
	defer rows.Close()

	var docs []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s document: %w", c.table, err)
		}
		doc, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.table, err)
	}
	return docs, nil
}

func (c *Collection[T]) decode(raw []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c.table, err)
	}
	return &doc, nil
}
