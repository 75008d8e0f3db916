// Package pgstore is the PostgreSQL docstore backend. Every collection
// lives in one jsonb table; equality filters use @> containment, in-set
// filters use ->> with ANY, and partial updates use the || merge operator.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/classpad/internal/docstore"
)

// SQLSTATEs that signal a sorted query hit missing database support rather
// than a general store failure.
const (
	sqlstateUndefinedFunction = "42883"
	sqlstateUndefinedObject   = "42704"
)

// Store is a PostgreSQL-backed implementation of docstore.Store.
type Store struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// New wraps an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureSchema creates the documents table and its lookup index if they do
// not exist. pgstore owns this DDL; there is no external migration step.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			doc JSONB NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS documents_doc_idx ON documents USING GIN (doc jsonb_path_ops)`,
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure documents schema: %w", err)
		}
	}
	return nil
}

// Collection implements docstore.Store.
func (s *Store) Collection(name string) docstore.Collection {
	return &collection{store: s, name: name}
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Insert(ctx context.Context, data map[string]interface{}) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	sql, args, err := c.store.sb.
		Insert("documents").
		Columns("collection", "id", "doc").
		Values(c.name, id, raw).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	if _, err := c.store.pool.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("insert into %s: %w", c.name, err)
	}
	return id, nil
}

func (c *collection) Get(ctx context.Context, id string) (*docstore.Document, error) {
	sql, args, err := c.store.sb.
		Select("doc").
		From("documents").
		Where(squirrel.Eq{"collection": c.name, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var raw []byte
	if err := c.store.pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if isNoRows(err) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	return &docstore.Document{ID: id, Data: data}, nil
}

func (c *collection) Find(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if q.In != nil && len(q.In.Values) > docstore.MaxInValues {
		return nil, docstore.ErrTooManyInValues
	}

	builder := c.store.sb.
		Select("id", "doc").
		From("documents").
		Where(squirrel.Eq{"collection": c.name})

	if len(q.Filters) > 0 {
		contained := make(map[string]interface{}, len(q.Filters))
		for _, f := range q.Filters {
			contained[f.Field] = f.Value
		}
		raw, err := json.Marshal(contained)
		if err != nil {
			return nil, fmt.Errorf("encode filters: %w", err)
		}
		builder = builder.Where("doc @> ?", raw)
	}
	if q.In != nil {
		builder = builder.Where("doc->>? = ANY(?)", q.In.Field, q.In.Values)
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		builder = builder.OrderByClause("doc->>? "+dir, q.OrderBy)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find: %w", err)
	}

	rows, err := c.store.pool.Query(ctx, sql, args...)
	if err != nil {
		if q.OrderBy != "" && isIndexError(err) {
			return nil, fmt.Errorf("find %s order by %s: %w", c.name, q.OrderBy, docstore.ErrIndexUnavailable)
		}
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}
	defer rows.Close()

	var out []docstore.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", c.name, err)
		}
		var data map[string]interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
		}
		out = append(out, docstore.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", c.name, err)
	}
	return out, nil
}

func (c *collection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}

	sql, args, err := c.store.sb.
		Update("documents").
		Set("doc", squirrel.Expr("doc || ?", raw)).
		Where(squirrel.Eq{"collection": c.name, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := c.store.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isIndexError reports whether a query failure came from missing sort
// support (undefined function/object SQLSTATEs) as opposed to a general
// store failure.
func isIndexError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlstateUndefinedFunction || pgErr.Code == sqlstateUndefinedObject
}
