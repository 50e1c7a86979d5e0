package gremlin

import (
	"database/sql"

	"github.com/lib/pq"
)

// DerefArray binds the slice p points to as a database array. A nil pointer
// binds NULL.
func DerefArray[T any](p *[]T) any {
	if p == nil {
		return nil
	}
	return pq.Array(*p)
}

// NullArray returns a scanner storing a nullable database array into a
// pointer to a slice. NULL sets the pointer to nil.
func NullArray[T any](p **[]T) sql.Scanner {
	return &nullArray[T]{dest: p}
}

type nullArray[T any] struct {
	dest **[]T
}

func (a *nullArray[T]) Scan(src any) error {
	if src == nil {
		*a.dest = nil
		return nil
	}
	var v []T
	if err := pq.Array(&v).Scan(src); err != nil {
		return err
	}
	*a.dest = &v
	return nil
}
