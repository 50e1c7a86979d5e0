package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/syssam/gremlin/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods.
// It is the executor every generated operation runs against, and it is
// implemented by *sql.DB (pool), *sql.Conn and *sql.Tx (single connection)
// as well as by the wrappers in this package.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ErrNoPool is returned by the Driver methods that need a *sql.DB when the
// driver wraps another executor, such as a transaction.
var ErrNoPool = errors.New("dialect/sql: driver is not backed by a *sql.DB")

// Driver is a pool-backed executor that remembers its dialect.
type Driver struct {
	Conn
	dialect string
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open wraps the database/sql.Open method. The driver name must be registered
// by the caller (e.g. by importing modernc.org/sqlite or github.com/lib/pq),
// except "pgx" which this package registers.
func Open(driverName, source string) (*Driver, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", driverName, err)
	}
	d := DialectOf(driverName)
	return NewDriver(d, Conn{db, d}), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// OpenPool wraps a pgx connection pool with a Driver.
func OpenPool(pool *pgxpool.Pool) *Driver {
	return OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool))
}

// DialectOf maps a database/sql driver name to its dialect.
func DialectOf(driverName string) string {
	switch driverName {
	case "pgx", "postgres", "postgresql":
		return dialect.Postgres
	case "sqlite", "sqlite3":
		return dialect.SQLite
	}
	return driverName
}

// DB returns the underlying *sql.DB instance. It reports false when the
// driver was created over another executor.
func (d Driver) DB() (*sql.DB, bool) {
	db, ok := d.ExecQuerier.(*sql.DB)
	return db, ok
}

// Dialect returns the dialect of the driver.
func (d Driver) Dialect() string {
	return d.dialect
}

// Tx starts and returns a transaction.
func (d *Driver) Tx(ctx context.Context) (*Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (*Tx, error) {
	db, ok := d.DB()
	if !ok {
		return nil, ErrNoPool
	}
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{tx, d.dialect},
		tx:   tx,
	}, nil
}

// Borrow returns a single connection taken from the pool. Statements run on
// it share one session. The caller must Close it to return it to the pool.
func (d *Driver) Borrow(ctx context.Context) (*BorrowedConn, error) {
	db, ok := d.DB()
	if !ok {
		return nil, ErrNoPool
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &BorrowedConn{
		Conn: Conn{conn, d.dialect},
		conn: conn,
	}, nil
}

// Close closes the underlying pool.
func (d *Driver) Close() error {
	db, ok := d.DB()
	if !ok {
		return ErrNoPool
	}
	return db.Close()
}

// Tx is a transaction-scoped executor.
type Tx struct {
	Conn
	tx *sql.Tx
}

// Commit commits the transaction.
func (tx *Tx) Commit() error { return tx.tx.Commit() }

// Rollback aborts the transaction.
func (tx *Tx) Rollback() error { return tx.tx.Rollback() }

// BorrowedConn is an executor bound to one pooled connection.
type BorrowedConn struct {
	Conn
	conn *sql.Conn
}

// Close returns the connection to the pool.
func (c *BorrowedConn) Close() error { return c.conn.Close() }

// Conn attaches a dialect to an ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
}

// NewConn returns a Conn for the given executor and dialect.
func NewConn(dialect string, ex ExecQuerier) Conn {
	return Conn{ex, dialect}
}

// Dialect returns the dialect of the connection.
func (c Conn) Dialect() string {
	return c.dialect
}

type (
	// Result is an alias to sql.Result.
	Result = sql.Result
	// TxOptions holds the transaction options to be used in DB.BeginTx.
	TxOptions = sql.TxOptions
)

var (
	_ ExecQuerier = (*Driver)(nil)
	_ ExecQuerier = (*Tx)(nil)
	_ ExecQuerier = (*BorrowedConn)(nil)
)
