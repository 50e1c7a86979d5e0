package gen

import (
	"strings"

	"github.com/syssam/gremlin/dialect"
	"github.com/syssam/gremlin/dialect/sql"
)

// QueryPlan is a statement and the fields supplying its parameters, in
// binding order.
type QueryPlan struct {
	SQL    string
	Params []*Field
}

// InsertPlan describes the insert statement of a record. Records without
// optional fields have a Static plan. Otherwise the statement is assembled
// at call time from the Required fields, followed by the Optional fields
// that carry a value.
type InsertPlan struct {
	Table     string
	Static    *QueryPlan
	Required  []*Field
	Optional  []*Field
	Returning string
	dialect   string
}

// Dynamic reports whether the statement is assembled at call time.
func (p *InsertPlan) Dynamic() bool { return p.Static == nil }

// NamedPlan is a rendered statement of a record, labeled with its operation.
type NamedPlan struct {
	Op  string `yaml:"op"`
	SQL string `yaml:"sql"`
}

// Columns returns the projection of the record in declaration order. Cast
// fields are coerced and aliased back to their column name.
func (t *Type) Columns() string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Projection()
	}
	return strings.Join(cols, ", ")
}

// Projection returns the field as it appears in a column list.
func (f *Field) Projection() string {
	if f.Cast == "" {
		return f.Column
	}
	return dialect.Cast(f.Column, f.Cast) + " AS " + f.Column
}

// placeholder returns the n-th parameter marker for the field.
func (f *Field) placeholder(n int) string {
	return dialect.Cast(dialect.Placeholder(f.typ.dialect(), n), f.Cast)
}

// InsertPlan returns the insert statement of the record.
func (t *Type) InsertPlan() *InsertPlan {
	p := &InsertPlan{Table: t.Table, Returning: t.Columns(), dialect: t.dialect()}
	for _, f := range t.InsertFields() {
		if f.Optional() {
			p.Optional = append(p.Optional, f)
		} else {
			p.Required = append(p.Required, f)
		}
	}
	if len(p.Optional) > 0 {
		return p
	}
	p.Static = &QueryPlan{SQL: p.Query(nil), Params: p.Required}
	return p
}

// UpdatePlan returns the update statement of the record. Keys are bound
// first, settable fields after them. It reports false when the record has
// nothing to set, in which case no update is generated.
func (t *Type) UpdatePlan() (*QueryPlan, bool) {
	keys, set := t.Keys(), t.SetFields()
	if len(set) == 0 {
		return nil, false
	}
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(t.Table)
	b.WriteString(" SET ")
	for i, f := range set {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Column)
		b.WriteString(" = ")
		b.WriteString(f.placeholder(len(keys) + i + 1))
	}
	t.where(&b, keys)
	t.notDeleted(&b, " AND ")
	b.WriteString(" RETURNING ")
	b.WriteString(t.Columns())
	return &QueryPlan{SQL: b.String(), Params: append(keys, set...)}, true
}

// DeletePlan returns the delete statement of the record. With soft delete
// the row is timestamped instead of removed.
func (t *Type) DeletePlan() *QueryPlan {
	keys := t.Keys()
	var b strings.Builder
	if sd := t.SoftDelete; sd != nil {
		b.WriteString("UPDATE ")
		b.WriteString(t.Table)
		b.WriteString(" SET ")
		b.WriteString(sd.Column)
		b.WriteString(" = ")
		b.WriteString(dialect.Now(t.dialect()))
	} else {
		b.WriteString("DELETE FROM ")
		b.WriteString(t.Table)
	}
	t.where(&b, keys)
	return &QueryPlan{SQL: b.String(), Params: keys}
}

// FetchPlan returns the statement selecting one record by key.
func (t *Type) FetchPlan() *QueryPlan {
	keys := t.Keys()
	var b strings.Builder
	t.selectFrom(&b)
	t.where(&b, keys)
	t.notDeleted(&b, " AND ")
	return &QueryPlan{SQL: b.String(), Params: keys}
}

// StreamPlan returns the statement selecting all records.
func (t *Type) StreamPlan() *QueryPlan {
	var b strings.Builder
	t.selectFrom(&b)
	t.notDeleted(&b, " WHERE ")
	return &QueryPlan{SQL: b.String()}
}

// Plans returns every statement the record produces. A dynamic insert is
// rendered twice: with none and with all of its optional columns.
func (t *Type) Plans() []NamedPlan {
	var plans []NamedPlan
	ins := t.InsertPlan()
	if ins.Dynamic() {
		plans = append(plans,
			NamedPlan{Op: "insert (defaults)", SQL: ins.Query(nil)},
			NamedPlan{Op: "insert (values)", SQL: ins.Query(ins.Optional)},
		)
	} else {
		plans = append(plans, NamedPlan{Op: "insert", SQL: ins.Static.SQL})
	}
	if up, ok := t.UpdatePlan(); ok {
		plans = append(plans, NamedPlan{Op: "update", SQL: up.SQL})
	}
	return append(plans,
		NamedPlan{Op: "delete", SQL: t.DeletePlan().SQL},
		NamedPlan{Op: "fetch", SQL: t.FetchPlan().SQL},
		NamedPlan{Op: "stream", SQL: t.StreamPlan().SQL},
	)
}

// Query renders the insert statement with the given optional fields
// present, the same way the generated code assembles it at call time.
func (p *InsertPlan) Query(present []*Field) string {
	if p.Static != nil {
		return p.Static.SQL
	}
	b := sql.Dialect(p.dialect).Insert(p.Table).Returning(p.Returning)
	for _, f := range p.Required {
		b.SetCast(f.Column, f.Cast, nil)
	}
	for _, f := range present {
		b.SetCast(f.Column, f.Cast, nil)
	}
	query, _ := b.Query()
	return query
}

func (t *Type) selectFrom(b *strings.Builder) {
	b.WriteString("SELECT ")
	b.WriteString(t.Columns())
	b.WriteString(" FROM ")
	b.WriteString(t.Table)
}

// where writes the conjunction of key comparisons, numbered from 1.
func (t *Type) where(b *strings.Builder, keys []*Field) {
	b.WriteString(" WHERE ")
	for i, f := range keys {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(f.Column)
		b.WriteString(" = ")
		b.WriteString(f.placeholder(i + 1))
	}
}

func (t *Type) notDeleted(b *strings.Builder, sep string) {
	if t.SoftDelete == nil {
		return
	}
	b.WriteString(sep)
	b.WriteString(t.SoftDelete.Column)
	b.WriteString(" IS NULL")
}
