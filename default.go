package gremlin

import "fmt"

// Defaultable holds either an explicit column value or the instruction to
// let the database apply the column default. The zero value is the latter,
// so an Insertable shape left unset inserts the store default.
//
// A Defaultable[*string] distinguishes all three of: use the default,
// Value(nil) (insert NULL) and Value(&s).
type Defaultable[T any] struct {
	value T
	set   bool
}

// Default returns a Defaultable that omits the column from the insert.
func Default[T any]() Defaultable[T] {
	return Defaultable[T]{}
}

// Value returns a Defaultable holding v.
func Value[T any](v T) Defaultable[T] {
	return Defaultable[T]{value: v, set: true}
}

// Get returns the explicit value and true, or the zero value and false when
// the database default should be used.
func (d Defaultable[T]) Get() (T, bool) {
	return d.value, d.set
}

// IsDefault reports whether the database default should be used.
func (d Defaultable[T]) IsDefault() bool {
	return !d.set
}

// String implements fmt.Stringer.
func (d Defaultable[T]) String() string {
	if !d.set {
		return "Default"
	}
	return fmt.Sprintf("Value(%v)", d.value)
}
