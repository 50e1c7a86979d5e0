package main

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/gremlin/compiler/gen"
	"github.com/syssam/gremlin/compiler/load"
)

func field(name, typ string, tag ...string) *load.Field {
	f := &load.Field{Name: name, Exported: token.IsExported(name), Type: &load.TypeInfo{Kind: load.TypeBasic, Name: typ}, Tagged: len(tag) > 0}
	if len(tag) > 0 {
		f.Column, f.Options = tag[0], tag[1:]
	}
	return f
}

func artistSchema() *load.Schema {
	return &load.Schema{
		Name:     "Artist",
		Exported: true,
		Kind:     load.KindStruct,
		Pkg:      load.Package{Path: "example.com/music", Name: "music", Dir: "/src/music"},
		Options:  map[string]string{"table": "artist"},
		Fields: []*load.Field{
			field("ID", "int64", "id", "pk", "generated"),
			field("Name", "string", "name", "default"),
			field("Slug", "string", "slug", "generated"),
		},
	}
}

func newGraph(t *testing.T, c *gen.Config, schemas ...*load.Schema) *gen.Graph {
	t.Helper()
	g, err := gen.NewGraph(c, schemas...)
	require.NoError(t, err)
	return g
}

// copyRecords copies the record declarations of a testdata package into a
// fresh package next to it, so that generated files land in a scratch
// directory. It returns the pattern of the new package.
func copyRecords(t *testing.T, src string) string {
	t.Helper()
	dir, err := os.MkdirTemp(filepath.Dir(src), filepath.Base(src)+"-")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	buf, err := os.ReadFile(filepath.Join(src, "models.go"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), buf, 0o644))
	return filepath.ToSlash(dir)
}
