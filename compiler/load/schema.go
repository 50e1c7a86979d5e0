package load

import (
	"fmt"
	"go/types"
	"strconv"
	"strings"

	"github.com/fatih/structtag"
)

// Directive marks a struct type as a gremlin record.
const Directive = "//gremlin:entity"

// TagKey is the struct tag key holding the column name and field options.
const TagKey = "gremlin"

// Kind classifies the declaration a directive was attached to.
type Kind string

// Declaration kinds.
const (
	KindStruct Kind = "struct"
	KindAlias  Kind = "alias"
	KindOther  Kind = "other"
)

// Schema describes a directive-marked type declaration as it appears in source.
type Schema struct {
	Name       string            `json:"name,omitempty"`
	Exported   bool              `json:"exported,omitempty"`
	Pos        string            `json:"-"`
	Kind       Kind              `json:"kind,omitempty"`
	TypeParams int               `json:"type_params,omitempty"`
	Pkg        Package           `json:"pkg"`
	Options    map[string]string `json:"options,omitempty"`
	Fields     []*Field          `json:"fields,omitempty"`
	Embedded   []string          `json:"embedded,omitempty"`
	Methods    []string          `json:"methods,omitempty"`
}

// Package identifies where a schema was declared and where its code is written.
type Package struct {
	Path string `json:"path,omitempty"`
	Name string `json:"name,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// Field is a named struct field of a record.
type Field struct {
	Name     string    `json:"name,omitempty"`
	Exported bool      `json:"exported,omitempty"`
	Type     *TypeInfo `json:"type,omitempty"`
	Tagged   bool      `json:"tagged,omitempty"`
	Column   string    `json:"column,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Pos      string    `json:"-"`
}

// TypeKind is the shape of a Go type.
type TypeKind string

// Type kinds.
const (
	TypeBasic   TypeKind = "basic"
	TypeNamed   TypeKind = "named"
	TypePointer TypeKind = "pointer"
	TypeSlice   TypeKind = "slice"
	TypeArray   TypeKind = "array"
	TypeMap     TypeKind = "map"
	TypeOther   TypeKind = "other"
)

// TypeInfo is a serializable description of a field type, detailed enough
// to spell the type again in generated code.
type TypeInfo struct {
	Kind    TypeKind    `json:"kind"`
	Name    string      `json:"name,omitempty"`
	PkgPath string      `json:"pkg_path,omitempty"`
	Elem    *TypeInfo   `json:"elem,omitempty"`
	Key     *TypeInfo   `json:"key,omitempty"`
	Len     int64       `json:"len,omitempty"`
	Args    []*TypeInfo `json:"args,omitempty"`
}

// NewTypeInfo describes t.
func NewTypeInfo(t types.Type) *TypeInfo {
	switch t := t.(type) {
	case *types.Basic:
		return &TypeInfo{Kind: TypeBasic, Name: t.Name()}
	case *types.Pointer:
		return &TypeInfo{Kind: TypePointer, Elem: NewTypeInfo(t.Elem())}
	case *types.Slice:
		return &TypeInfo{Kind: TypeSlice, Elem: NewTypeInfo(t.Elem())}
	case *types.Array:
		return &TypeInfo{Kind: TypeArray, Len: t.Len(), Elem: NewTypeInfo(t.Elem())}
	case *types.Map:
		return &TypeInfo{Kind: TypeMap, Key: NewTypeInfo(t.Key()), Elem: NewTypeInfo(t.Elem())}
	case *types.Alias:
		return named(t.Obj(), t.TypeArgs())
	case *types.Named:
		return named(t.Obj(), t.TypeArgs())
	default:
		return &TypeInfo{Kind: TypeOther, Name: types.TypeString(t, nil)}
	}
}

func named(obj *types.TypeName, args *types.TypeList) *TypeInfo {
	ti := &TypeInfo{Kind: TypeNamed, Name: obj.Name()}
	if pkg := obj.Pkg(); pkg != nil {
		ti.PkgPath = pkg.Path()
	}
	for i := range args.Len() {
		ti.Args = append(ti.Args, NewTypeInfo(args.At(i)))
	}
	return ti
}

// IsPointer reports whether the type is a pointer.
func (t *TypeInfo) IsPointer() bool {
	return t != nil && t.Kind == TypePointer
}

// String returns the type as written in Go, qualified by full package path.
func (t *TypeInfo) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypePointer:
		return "*" + t.Elem.String()
	case TypeSlice:
		return "[]" + t.Elem.String()
	case TypeArray:
		return "[" + strconv.FormatInt(t.Len, 10) + "]" + t.Elem.String()
	case TypeMap:
		return "map[" + t.Key.String() + "]" + t.Elem.String()
	case TypeNamed:
		var b strings.Builder
		if t.PkgPath != "" {
			b.WriteString(t.PkgPath)
			b.WriteString(".")
		}
		b.WriteString(t.Name)
		if len(t.Args) > 0 {
			b.WriteString("[")
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(a.String())
			}
			b.WriteString("]")
		}
		return b.String()
	default:
		return t.Name
	}
}

// ParseDirective reads the record options from the comment lines of a type
// declaration. It reports false when no line carries the directive.
//
//	//gremlin:entity table=public.artist soft_delete=deleted_at
func ParseDirective(lines []string) (map[string]string, bool, error) {
	for _, line := range lines {
		rest, ok := strings.CutPrefix(line, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		opts := make(map[string]string)
		for _, kv := range strings.Fields(rest) {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				return nil, true, fmt.Errorf("malformed directive option %q: expect key=value", kv)
			}
			if _, dup := opts[k]; dup {
				return nil, true, fmt.Errorf("duplicate directive option %q", k)
			}
			if strings.HasPrefix(v, `"`) {
				uv, err := strconv.Unquote(v)
				if err != nil {
					return nil, true, fmt.Errorf("directive option %q: %w", k, err)
				}
				v = uv
			}
			opts[k] = v
		}
		return opts, true, nil
	}
	return nil, false, nil
}

// ParseTag extracts the gremlin tag from a raw struct tag. It reports false
// when the field carries no gremlin tag.
func ParseTag(raw string) (column string, options []string, ok bool, err error) {
	if raw == "" {
		return "", nil, false, nil
	}
	tags, err := structtag.Parse(raw)
	if err != nil {
		return "", nil, false, err
	}
	tag, err := tags.Get(TagKey)
	if err != nil {
		return "", nil, false, nil
	}
	return tag.Name, joinParens(tag.Options), true, nil
}

// joinParens merges option fragments split on a comma inside parentheses,
// as in cast=numeric(10,2).
func joinParens(opts []string) []string {
	var (
		out   []string
		depth int
	)
	for _, opt := range opts {
		if depth > 0 {
			out[len(out)-1] += "," + opt
		} else {
			out = append(out, opt)
		}
		depth += strings.Count(opt, "(") - strings.Count(opt, ")")
		if depth < 0 {
			depth = 0
		}
	}
	return out
}
