package sql

import (
	"strings"

	"github.com/syssam/gremlin/dialect"
)

// DialectBuilder creates statement builders for one dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect returns a builder for the given dialect.
//
//	query, args := sql.Dialect(dialect.Postgres).
//		Insert("defaultable").
//		Set("name", "x").
//		Returning("id, name").
//		Query()
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Insert creates an InsertBuilder for the table.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	return &InsertBuilder{dialect: d.dialect, table: table}
}

// InsertBuilder assembles an INSERT statement whose column list is only
// known at call time. Columns keep the order in which they were set and
// placeholders are numbered in the same order as the returned arguments.
type InsertBuilder struct {
	dialect   string
	table     string
	columns   []string
	casts     []string
	args      []any
	returning string
}

// Set appends a column and its value.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	return i.SetCast(column, "", v)
}

// SetCast appends a column whose placeholder is coerced to the given SQL type.
func (i *InsertBuilder) SetCast(column, cast string, v any) *InsertBuilder {
	i.columns = append(i.columns, column)
	i.casts = append(i.casts, cast)
	i.args = append(i.args, v)
	return i
}

// Returning sets the projection of the RETURNING clause.
func (i *InsertBuilder) Returning(projection string) *InsertBuilder {
	i.returning = projection
	return i
}

// Len returns the number of columns set so far.
func (i *InsertBuilder) Len() int { return len(i.columns) }

// Query returns the statement and its arguments. With no columns set, the
// statement inserts a row made of the table defaults.
func (i *InsertBuilder) Query() (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(i.table)
	if len(i.columns) == 0 {
		b.WriteString(" DEFAULT VALUES")
	} else {
		b.WriteString(" (")
		b.WriteString(strings.Join(i.columns, ", "))
		b.WriteString(") VALUES (")
		for n := range i.columns {
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString(dialect.Cast(dialect.Placeholder(i.dialect, n+1), i.casts[n]))
		}
		b.WriteString(")")
	}
	if i.returning != "" {
		b.WriteString(" RETURNING ")
		b.WriteString(i.returning)
	}
	return b.String(), i.args
}
