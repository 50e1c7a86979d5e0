package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gremlin/compiler/gen"
)

const musicPattern = "./load/testdata/music"

func TestLoadGraph(t *testing.T) {
	graph, err := LoadGraph(nil, musicPattern)
	require.NoError(t, err)
	var names []string
	for _, n := range graph.Nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Artist", "Release", "Person", "SoftDelete", "track"}, names)
	assert.Equal(t, "deleted_at", graph.Nodes[3].SoftDelete.Column)
}

func TestLoadGraph_Invalid(t *testing.T) {
	_, err := LoadGraph(nil, "./load/testdata/invalid")
	require.Error(t, err)
	assert.ErrorIs(t, err, gen.ErrInvalidApplication)
	assert.ErrorIs(t, err, gen.ErrMissingTableName)
}

func TestLoadGraph_NoRecords(t *testing.T) {
	_, err := LoadGraph(nil, "./gen/sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no //gremlin:entity records")
}

// copyRecords copies the record declarations of a testdata package into a
// fresh package next to it and returns its pattern.
func copyRecords(t *testing.T, src string) string {
	t.Helper()
	dir, err := os.MkdirTemp(filepath.Dir(src), filepath.Base(src)+"-")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	buf, err := os.ReadFile(filepath.Join(src, "models.go"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), buf, 0o644))
	return "./" + filepath.ToSlash(dir)
}

func TestGenerate(t *testing.T) {
	target := copyRecords(t, musicPattern)
	err := Generate(context.Background(), []string{target}, gen.WithDialect("sqlite"))
	require.NoError(t, err)

	for _, name := range []string{"artist", "release", "person", "soft_delete", "track"} {
		_, err := os.Stat(filepath.Join(target, name+"_gremlin.go"))
		require.NoError(t, err, name)
	}
	content, err := os.ReadFile(filepath.Join(target, "soft_delete_gremlin.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "UPDATE public.soft_delete SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?1")
}

func TestGenerate_InvalidOption(t *testing.T) {
	err := Generate(context.Background(), []string{musicPattern}, gen.WithDialect("oracle"))
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}
