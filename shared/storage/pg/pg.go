// Package pg holds the PostgreSQL primitives the storage layer is built on:
// a transaction-agnostic Querier, pooled connections and a transaction
// helper.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/itchan-dev/forum/shared/config"
	"github.com/lib/pq"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so query helpers work
// inside and outside transactions.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// ConnectionConfig holds database connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// ConnectionConfigFrom overrides the defaults with whatever the config sets.
func ConnectionConfigFrom(pg config.Pg) ConnectionConfig {
	c := DefaultConnectionConfig()
	if pg.MaxOpenConns > 0 {
		c.MaxOpenConns = pg.MaxOpenConns
	}
	if pg.MaxIdleConns > 0 {
		c.MaxIdleConns = pg.MaxIdleConns
	}
	if pg.ConnMaxLifetime > 0 {
		c.ConnMaxLifetime = pg.ConnMaxLifetime
	}
	return c
}

// DSN builds a postgres:// URL. url.URL percent-encodes the user info, so
// passwords with quotes, backslashes or spaces reach the server intact.
func DSN(pg config.Pg, password string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.User, password),
		Host:     net.JoinHostPort(pg.Host, strconv.Itoa(pg.Port)),
		Path:     "/" + pg.Dbname,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, dsn string, connCfg ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// WithTx runs fn inside a transaction. An error from fn rolls back, nil
// commits.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Postgres error codes the storage layer reacts to.
const (
	ForeignKeyViolation = "23503"
	UniqueViolation     = "23505"
	InvalidTextRep      = "22P02" // malformed uuid and the like
)

// IsCode reports whether err is a postgres error with the given code.
func IsCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
