package gen

import (
	"go/token"

	"github.com/syssam/gremlin/compiler/load"
)

const testPkg = "example.com/music"

func basic(name string) *load.TypeInfo { return &load.TypeInfo{Kind: load.TypeBasic, Name: name} }

func named(pkg, name string) *load.TypeInfo {
	return &load.TypeInfo{Kind: load.TypeNamed, PkgPath: pkg, Name: name}
}

func ptr(elem *load.TypeInfo) *load.TypeInfo { return &load.TypeInfo{Kind: load.TypePointer, Elem: elem} }

func slice(elem *load.TypeInfo) *load.TypeInfo { return &load.TypeInfo{Kind: load.TypeSlice, Elem: elem} }

// field creates a tagged field; tag holds the column followed by options.
func field(name string, typ *load.TypeInfo, tag ...string) *load.Field {
	f := &load.Field{Name: name, Exported: token.IsExported(name), Type: typ, Tagged: len(tag) > 0}
	if len(tag) > 0 {
		f.Column, f.Options = tag[0], tag[1:]
	}
	return f
}

func record(name string, opts map[string]string, fields ...*load.Field) *load.Schema {
	return &load.Schema{
		Name:     name,
		Exported: token.IsExported(name),
		Pos:      "models.go:1:6",
		Kind:     load.KindStruct,
		Pkg:      load.Package{Path: testPkg, Name: "music", Dir: "/src/music"},
		Options:  opts,
		Fields:   fields,
	}
}

func table(name string) map[string]string { return map[string]string{"table": name} }

// inDir moves the records to a package declared in dir.
func inDir(dir string, schemas ...*load.Schema) []*load.Schema {
	for _, s := range schemas {
		s.Pkg.Dir = dir
	}
	return schemas
}

// artist: id is assigned by the database, slug is derived from name.
func artistSchema() *load.Schema {
	return record("Artist", table("artist"),
		field("ID", basic("int32"), "id", "pk", "generated"),
		field("Name", basic("string"), "name"),
		field("Slug", basic("string"), "slug", "generated"),
	)
}

func softDeleteSchema() *load.Schema {
	return record("SoftDelete", map[string]string{"table": "public.soft_delete", "soft_delete": "deleted_at"},
		field("ID", basic("int32"), "id", "pk", "generated"),
		field("Value", basic("string"), "value"),
		field("DeletedAt", ptr(named("time", "Time")), "deleted_at", "default"),
	)
}

func personSchema() *load.Schema {
	return record("Person", table("person"),
		field("ID", named("github.com/google/uuid", "UUID"), "id", "pk", "cast=uuid"),
		field("Name", basic("string")),
		field("CurrentMood", named(testPkg, "Mood"), "", "cast=mood"),
	)
}

func membershipSchema() *load.Schema {
	return record("Membership", table("membership"),
		field("ArtistID", basic("int64"), "", "pk"),
		field("BandID", basic("int64"), "", "pk"),
		field("Role", basic("string"), "role"),
	)
}

// counter has nothing to insert and nothing to update.
func counterSchema() *load.Schema {
	return record("Counter", table("counter"),
		field("ID", basic("int64"), "id", "pk", "generated"),
		field("CreatedAt", named("time", "Time"), "created_at", "generated"),
	)
}

func defaultableSchema() *load.Schema {
	return record("Defaultable", table("defaultable"),
		field("ID", basic("int32"), "id", "pk", "generated"),
		field("Name", basic("string"), "name", "default"),
		field("Tags", ptr(slice(basic("string"))), "tags", "default", "deref", "array"),
		field("Note", ptr(basic("string")), "note", "as_ref"),
	)
}

func mustType(c *Config, s *load.Schema) *Type {
	t, err := NewType(c, s)
	if err != nil {
		panic(err)
	}
	return t
}
