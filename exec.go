package gremlin

import (
	"context"
	"iter"
)

// Scanner is the interface that wraps Scan. It is implemented by *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc decodes the current row into a record.
type ScanFunc[T any] func(Scanner) (*T, error)

// QueryOne runs a statement expected to return exactly one row, such as an
// INSERT or UPDATE with a RETURNING clause. When no row comes back, it returns
// a *NotFoundError for label. Executor errors are returned as is.
func QueryOne[T any](ctx context.Context, ex ExecQuerier, label, query string, args []any, scan ScanFunc[T]) (*T, error) {
	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, NewNotFoundError(label)
	}
	v, err := scan(rows)
	if err != nil {
		return nil, err
	}
	return v, rows.Close()
}

// QueryOptional runs a statement returning zero or one row. Zero rows yield
// a nil record and a nil error.
func QueryOptional[T any](ctx context.Context, ex ExecQuerier, query string, args []any, scan ScanFunc[T]) (*T, error) {
	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	v, err := scan(rows)
	if err != nil {
		return nil, err
	}
	return v, rows.Close()
}

// Stream returns a lazy sequence over the rows of query. Each range over the
// sequence runs the query again. A row that fails to scan is yielded with its
// error and iteration goes on; a failing query or cursor ends the sequence
// after yielding the error. Rows are closed when the consumer stops early.
func Stream[T any](ctx context.Context, ex ExecQuerier, query string, args []any, scan ScanFunc[T]) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		rows, err := ex.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			if !yield(scan(rows)) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// Exec runs a statement without result rows.
func Exec(ctx context.Context, ex ExecQuerier, query string, args []any) error {
	_, err := ex.ExecContext(ctx, query, args...)
	return err
}

// Deref returns the value p points to, or nil for a nil pointer, so that the
// driver binds the pointee or NULL.
func Deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
