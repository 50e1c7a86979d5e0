package gen

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/syssam/gremlin/compiler/load"
)

// The following types and their exported methods are used by the dialect
// generators to emit the code of a record.
type (
	// Type represents one record, the table it maps to and the fields
	// it holds. A Type is immutable once NewType returns.
	Type struct {
		*Config
		schema *load.Schema
		// Name holds the Go name of the record type.
		Name string
		// Exported indicates that the record type is exported. Generated
		// identifiers follow the visibility of the record.
		Exported bool
		// Table is the target table, optionally schema-qualified.
		Table string
		// Pkg is the package the record was declared in.
		Pkg load.Package
		// Fields holds all fields of the record, in declaration order.
		Fields []*Field
		// SoftDelete is the field holding the logical deletion timestamp.
		// Nil when soft deletion is not configured.
		SoftDelete *Field
	}

	// Field holds the information of a record field used by the generators.
	Field struct {
		def *load.Field
		typ *Type
		// Name is the Go name of the field.
		Name string
		// Column is the column the field maps to.
		Column string
		// Exported mirrors the visibility of the Go field.
		Exported bool
		// Type holds the Go type of the field.
		Type *load.TypeInfo
		// PK marks the field as part of the record identity.
		PK bool
		// Generated marks the field as assigned by the database.
		Generated bool
		// Default marks the field as omittable on insert.
		Default bool
		// Deref binds the pointee of a pointer field instead of the pointer.
		Deref bool
		// Array binds and scans the field as a database array.
		Array bool
		// Cast is the SQL type the column is coerced to on bind and projection.
		Cast string
		// Position of the field in source.
		Position string
	}
)

// Record options read from the directive.
const (
	optTable      = "table"
	optSoftDelete = "soft_delete"
)

// Field options read from the struct tag.
const (
	optPK        = "pk"
	optGenerated = "generated"
	optDefault   = "default"
	optDeref     = "deref"
	optAsRef     = "as_ref"
	optCast      = "cast"
	optArray     = "array"
)

var (
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	castRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_ .,()\[\]]*$`)

	// Methods generated on the record and its shapes. A record field with one
	// of these names would make the generated code ambiguous.
	reservedIdent = []string{"Delete", "Fetch", "Insert", "ToPk", "ToUpdatable", "Update"}
)

// NewType validates a loaded schema and creates the record type from it.
// Errors are *SchemaError or *ValidationError values; the categorical ones
// match ErrInvalidApplication, ErrMissingTableName or ErrDanglingSoftDelete
// with errors.Is.
func NewType(c *Config, schema *load.Schema) (*Type, error) {
	typ := &Type{
		Config:   c,
		schema:   schema,
		Name:     schema.Name,
		Exported: schema.Exported,
		Pkg:      schema.Pkg,
	}
	if err := typ.checkApplication(); err != nil {
		return nil, err
	}
	if err := typ.checkOptions(); err != nil {
		return nil, err
	}
	if len(schema.Fields) == 0 {
		return nil, NewSchemaError(typ.Name, "", "record has no fields", nil)
	}
	columns := make(map[string]*Field, len(schema.Fields))
	for _, f := range schema.Fields {
		tf, err := typ.newField(f)
		if err != nil {
			return nil, err
		}
		if prev, ok := columns[tf.Column]; ok {
			return nil, NewValidationError(typ.Name, tf.Name, tf.Column, fmt.Sprintf("column already mapped by field %s", prev.Name))
		}
		columns[tf.Column] = tf
		typ.Fields = append(typ.Fields, tf)
	}
	if len(typ.Keys()) == 0 {
		return nil, NewSchemaError(typ.Name, "", "record has no pk field; update, delete and fetch need a key", nil)
	}
	if err := typ.setSoftDelete(); err != nil {
		return nil, err
	}
	if err := typ.checkCollisions(); err != nil {
		return nil, err
	}
	return typ, nil
}

func (t *Type) checkApplication() error {
	s := t.schema
	switch {
	case s.Kind == load.KindAlias:
		return NewSchemaError(t.Name, "", "directive applied to a type alias", ErrInvalidApplication)
	case s.Kind != load.KindStruct:
		return NewSchemaError(t.Name, "", "directive applied to a non-struct type", ErrInvalidApplication)
	case s.TypeParams > 0:
		return NewSchemaError(t.Name, "", "directive applied to a generic type", ErrInvalidApplication)
	case len(s.Embedded) > 0:
		return NewSchemaError(t.Name, s.Embedded[0], "embedded fields have no column name", ErrInvalidApplication)
	}
	return nil
}

func (t *Type) checkOptions() error {
	for k := range t.schema.Options {
		if k != optTable && k != optSoftDelete {
			return NewValidationError(t.Name, "", k, "unknown record option")
		}
	}
	table := t.schema.Options[optTable]
	if table == "" {
		return NewSchemaError(t.Name, "", "no table given; add table=<name> to the directive", ErrMissingTableName)
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 || slices.ContainsFunc(parts, func(p string) bool { return !identRe.MatchString(p) }) {
		return NewValidationError(t.Name, "", table, "table must be name or schema.name")
	}
	t.Table = table
	return nil
}

func (t *Type) newField(f *load.Field) (*Field, error) {
	tf := &Field{
		def:      f,
		typ:      t,
		Name:     f.Name,
		Column:   f.Column,
		Exported: f.Exported,
		Type:     f.Type,
		Position: f.Pos,
	}
	if tf.Column == "" {
		tf.Column = snake(f.Name)
	}
	if !identRe.MatchString(tf.Column) {
		return nil, NewValidationError(t.Name, f.Name, tf.Column, "invalid column name")
	}
	seen := make(map[string]bool, len(f.Options))
	for _, opt := range f.Options {
		k, v, hasValue := strings.Cut(strings.TrimSpace(opt), "=")
		if k == optAsRef {
			k = optDeref
		}
		if seen[k] {
			return nil, NewValidationError(t.Name, f.Name, opt, "duplicate option")
		}
		seen[k] = true
		if k == optCast {
			if !hasValue || !castRe.MatchString(v) || !balanced(v) {
				return nil, NewValidationError(t.Name, f.Name, opt, "cast requires a SQL type, e.g. cast=uuid")
			}
			tf.Cast = v
			continue
		}
		if hasValue {
			return nil, NewValidationError(t.Name, f.Name, opt, fmt.Sprintf("option %s takes no value", k))
		}
		switch k {
		case optPK:
			tf.PK = true
		case optGenerated:
			tf.Generated = true
		case optDefault:
			tf.Default = true
		case optDeref:
			tf.Deref = true
		case optArray:
			tf.Array = true
		default:
			return nil, NewValidationError(t.Name, f.Name, opt, "unknown option")
		}
	}
	switch {
	case tf.Deref && !tf.Type.IsPointer():
		return nil, NewValidationError(t.Name, f.Name, tf.Type.String(), "deref requires a pointer field")
	case tf.Default && tf.Generated && !tf.PK:
		return nil, NewValidationError(t.Name, f.Name, nil, "a generated field is never inserted and cannot have a default")
	}
	return tf, nil
}

func (t *Type) setSoftDelete() error {
	name, ok := t.schema.Options[optSoftDelete]
	if !ok {
		return nil
	}
	idx := slices.IndexFunc(t.Fields, func(f *Field) bool { return f.Column == name || f.Name == name })
	if idx == -1 {
		return NewSchemaError(t.Name, "", fmt.Sprintf("soft_delete=%s matches no field", name), ErrDanglingSoftDelete)
	}
	f := t.Fields[idx]
	if f.PK {
		return NewValidationError(t.Name, f.Name, name, "soft delete column cannot be a key")
	}
	if !nullable(f.Type) {
		return NewValidationError(t.Name, f.Name, name, "soft delete column must be nullable: use a pointer or a sql.Null type")
	}
	t.SoftDelete = f
	return nil
}

func (t *Type) checkCollisions() error {
	for _, f := range t.Fields {
		if slices.Contains(reservedIdent, f.Name) {
			return NewSchemaError(t.Name, f.Name, "field name collides with a generated method", nil)
		}
	}
	for _, m := range t.RecordMethods() {
		if slices.Contains(t.schema.Methods, m) {
			return NewSchemaError(t.Name, "", fmt.Sprintf("method %s is already declared on the record", m), nil)
		}
	}
	return nil
}

// Receiver returns the receiver name of the record type.
func (t *Type) Receiver() string { return receiver(t.Name) }

// Label returns the name used in runtime errors.
func (t *Type) Label() string { return snake(t.Name) }

// Pos returns the source position of the record declaration.
func (t *Type) Pos() string { return t.schema.Pos }

// DialectName returns the dialect the statements of the record are rendered for.
func (t *Type) DialectName() string { return t.Config.dialect() }

// Dir returns the directory the generated file is written to: the package
// directory of the record, since the file declares methods on it.
func (t *Type) Dir() string { return t.Pkg.Dir }

// FileName returns the name of the generated file.
func (t *Type) FileName() string { return snake(t.Name) + t.Config.suffix() }

// Path returns the full path of the generated file.
func (t *Type) Path() string { return filepath.Join(t.Dir(), t.FileName()) }

// ident returns a package-level identifier made of prefix and name that
// has the visibility of the record.
func (t *Type) ident(prefix, name string) string {
	id := prefix + upperFirst(name)
	if !t.Exported {
		id = lowerFirst(id)
	}
	return id
}

// InsertableName returns the name of the insert shape, e.g. InsertableArtist.
func (t *Type) InsertableName() string { return t.ident("Insertable", t.Name) }

// UpdatableName returns the name of the update shape, e.g. UpdatableArtist.
func (t *Type) UpdatableName() string { return t.ident("Updatable", t.Name) }

// PkName returns the name of the key shape, e.g. ArtistPk.
func (t *Type) PkName() string { return t.Name + "Pk" }

// StreamName returns the name of the stream function, e.g. StreamArtists.
func (t *Type) StreamName() string { return t.ident("Stream", plural(t.Name)) }

// ScanName returns the name of the row scanner, e.g. scanArtist.
func (t *Type) ScanName() string { return "scan" + upperFirst(t.Name) }

// ColumnsName returns the name of the projection constant, e.g. artistColumns.
func (t *Type) ColumnsName() string { return lowerFirst(t.Name) + "Columns" }

// Idents returns the package-level identifiers generated for the record.
func (t *Type) Idents() []string {
	ids := []string{t.InsertableName(), t.PkName(), t.StreamName(), t.ScanName(), t.ColumnsName()}
	if _, ok := t.UpdatePlan(); ok {
		ids = append(ids, t.UpdatableName())
	}
	return ids
}

// RecordMethods returns the methods generated on the record type itself.
func (t *Type) RecordMethods() []string {
	ms := []string{"Delete", "ToPk"}
	if _, ok := t.UpdatePlan(); ok {
		ms = append(ms, "ToUpdatable")
	}
	return ms
}

// Keys returns the primary key fields, in declaration order.
func (t *Type) Keys() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.PK })
}

// InsertFields returns the fields sent on insert: all fields that are not
// generated by the database.
func (t *Type) InsertFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return !f.Generated })
}

// SetFields returns the fields assigned by an update: non-key fields that are
// neither generated nor the soft delete column.
func (t *Type) SetFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.Settable() })
}

// UpdateFields returns the fields of the update shape: keys followed by
// settable fields, in declaration order.
func (t *Type) UpdateFields() []*Field {
	return t.FieldsBy(func(f *Field) bool { return f.PK || f.Settable() })
}

// FieldsBy returns the fields matching fn, in declaration order.
func (t *Type) FieldsBy(fn func(*Field) bool) []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if fn(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Optional reports whether the field may be omitted from an insert.
func (f *Field) Optional() bool { return f.Default && !f.Generated }

// Settable reports whether an update assigns the field.
func (f *Field) Settable() bool {
	return !f.PK && !f.Generated && !f.IsSoftDelete()
}

// IsSoftDelete reports whether the field is the soft delete column of its record.
func (f *Field) IsSoftDelete() bool { return f.typ != nil && f.typ.SoftDelete == f }

// balanced reports whether the parentheses and brackets of s are closed in order.
func balanced(s string) bool {
	var stack []rune
	for _, r := range s {
		switch r {
		case '(', '[':
			stack = append(stack, r)
		case ')', ']':
			open := '('
			if r == ']' {
				open = '['
			}
			if len(stack) == 0 || stack[len(stack)-1] != open {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// nullable reports whether a value of the type can hold SQL NULL, which the
// soft delete filter relies on.
func nullable(ti *load.TypeInfo) bool {
	if ti.IsPointer() {
		return true
	}
	return ti.Kind == load.TypeNamed && ti.PkgPath == "database/sql" && strings.HasPrefix(ti.Name, "Null")
}
