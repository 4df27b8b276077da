package store

import (
	"context"
	"errors"
	"fmt"

	// `pgx` specific imports for PostgreSQL interaction.
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresStore keeps documents as JSONB rows of a single `documents` table
// (see db/migrations). Equality filters become JSONB containment (`body @> filter`),
// which the GIN index on body serves directly.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already connected pool. The store owns the pool from here on.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Collection returns a handle on the named collection.
func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{pool: s.pool, name: name}
}

// Ping checks the connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type postgresCollection struct {
	pool *pgxpool.Pool
	name string
}

// filterJSON renders the filter as a JSONB containment operand. An empty filter
// renders as `{}`, which every object contains.
func filterJSON(filter Filter) (string, error) {
	if len(filter) == 0 {
		return "{}", nil
	}
	doc, err := encodeDocument(map[string]any(filter))
	if err != nil {
		return "", err
	}
	return string(doc.raw), nil
}

func (c *postgresCollection) FindOne(ctx context.Context, filter Filter, out any) (bool, error) {
	where, err := filterJSON(filter)
	if err != nil {
		return false, err
	}
	query := `SELECT body FROM documents
              WHERE collection = $1 AND body @> $2::jsonb
              ORDER BY seq LIMIT 1`
	var body []byte
	err = c.pool.QueryRow(ctx, query, c.name, where).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("find one in %s: %w", c.name, err)
	}
	return true, decodeInto(body, out)
}

func (c *postgresCollection) Find(ctx context.Context, filter Filter, out any) error {
	where, err := filterJSON(filter)
	if err != nil {
		return err
	}
	query := `SELECT body FROM documents
              WHERE collection = $1 AND body @> $2::jsonb
              ORDER BY seq`
	rows, err := c.pool.Query(ctx, query, c.name, where)
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.name, err)
	}
	defer rows.Close()

	raws := make([][]byte, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scan %s document: %w", c.name, err)
		}
		raws = append(raws, body)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s documents: %w", c.name, err)
	}
	return decodeAll(raws, out)
}

func (c *postgresCollection) InsertOne(ctx context.Context, doc any) error {
	encoded, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	query := `INSERT INTO documents (collection, body) VALUES ($1, $2::jsonb)`
	if _, err := c.pool.Exec(ctx, query, c.name, string(encoded.raw)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%s (%s): %w", c.name, pgErr.ConstraintName, ErrDuplicate)
		}
		return fmt.Errorf("insert into %s: %w", c.name, err)
	}
	return nil
}

func (c *postgresCollection) Count(ctx context.Context, filter Filter) (int, error) {
	where, err := filterJSON(filter)
	if err != nil {
		return 0, err
	}
	query := `SELECT count(*) FROM documents WHERE collection = $1 AND body @> $2::jsonb`
	var n int64
	if err := c.pool.QueryRow(ctx, query, c.name, where).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return int(n), nil
}
