// Package postgres implements the store interface on PostgreSQL using
// pgx for execution and goqu for SQL building. Row-level locking is done
// with SELECT ... FOR UPDATE inside transactions started by WithinTx.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
)

//go:embed schema.sql
var schemaSQL string

const (
	dialectPostgres = "postgres"

	tableAuthors     = "authors"
	tableBooks       = "books"
	tableBookAuthors = "book_authors"
	tableCopies      = "book_copies"
	tableCustomers   = "customers"
	tablePlacements  = "placements"

	pgUniqueViolation = "23505"
)

var dialect = goqu.Dialect(dialectPostgres)

// querier is the subset of pgx shared by pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// queries implements store.Tx against a querier, which is either the
// connection pool (auto-commit) or an open transaction.
type queries struct {
	q      querier
	logger *slog.Logger
}

// Store provides Postgres-backed persistence for the bookz server.
type Store struct {
	*queries
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// Config holds the connection settings for Open.
type Config struct {
	URL             string
	MaxConns        int32
	ConnMaxLifetime time.Duration
}

// Open connects to Postgres, applies the schema, and returns the store.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		queries: &queries{q: pool, logger: logger},
		pool:    pool,
	}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// WithinTx runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise; row locks taken by fn
// are held until then.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	pgTx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgTx.Rollback(ctx) }()

	if err := fn(ctx, &queries{q: pgTx, logger: s.logger}); err != nil {
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// translateError converts Postgres unique-constraint violations into the
// specific domain conflict for the constraint that fired. Other errors
// pass through unmodified.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !apperrors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "uq_book_isbn":
		return apperrors.ErrBookAlreadyExists.WithCause(err)
	case "uq_author_full_name":
		return apperrors.ErrAuthorAlreadyExists.WithCause(err)
	case "uq_customer_email":
		return apperrors.ErrCustomerEmailExists.WithCause(err)
	case "uq_customer_phone":
		return apperrors.ErrCustomerPhoneExists.WithCause(err)
	case "uq_customer_full_name":
		return apperrors.ErrCustomerFullNameExists.WithCause(err)
	case "uq_copy_placement":
		return apperrors.Conflictf("placement is already assigned to another copy").WithCause(err)
	}
	return apperrors.ErrConflict.WithCause(err)
}
