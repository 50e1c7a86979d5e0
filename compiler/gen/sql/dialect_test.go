package sql

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gremlin/compiler/gen"
)

func TestDialect_Name(t *testing.T) {
	assert.Equal(t, "sql", NewDialect(nil).Name())
}

// =============================================================================
// Record Tests
// =============================================================================

func TestGenRecord_Header(t *testing.T) {
	src := genSource(t, nil, artistSchema())
	assert.Contains(t, src, "// Code generated by gremlin. DO NOT EDIT.")
	assert.Contains(t, src, "package music")
	assert.Contains(t, src, `"github.com/syssam/gremlin"`)

	src = genSource(t, &gen.Config{Header: "// Custom header."}, artistSchema())
	assert.Contains(t, src, "// Custom header.")
}

func TestGenRecord_Scan(t *testing.T) {
	src := genSource(t, nil, artistSchema())
	assert.Contains(t, src, `const artistColumns = "id, name, slug"`)
	assert.Contains(t, src, "func scanArtist(s gremlin.Scanner) (*Artist, error) {")
	assert.Contains(t, src, "r := &Artist{}")
	assert.Contains(t, src, "if err := s.Scan(&r.ID, &r.Name, &r.Slug); err != nil {")
	assert.Contains(t, src, "return r, nil")
}

func TestGenRecord_ScanArrays(t *testing.T) {
	src := genSource(t, nil, defaultableSchema())
	assert.Contains(t, src, "s.Scan(&r.ID, &r.Name, gremlin.NullArray(&r.Tags), &r.Note)")

	src = genSource(t, nil, personSchema())
	assert.Contains(t, src, "s.Scan(&r.ID, &r.Name, &r.CurrentMood, pq.Array(&r.Genres))")
	assert.Contains(t, src, `"github.com/lib/pq"`)
}

func TestGenRecord_Conversions(t *testing.T) {
	src := genSource(t, nil, membershipSchema())
	assert.Contains(t, src, "func (m *Membership) ToPk() *MembershipPk {")
	assert.Contains(t, src, "ArtistID: m.ArtistID,")
	assert.Contains(t, src, "BandID:   m.BandID,")
	assert.Contains(t, src, "func (m *Membership) ToUpdatable() *UpdatableMembership {")
	assert.Contains(t, src, "Role:     m.Role,")
	assert.Contains(t, src, "func (m *Membership) Delete(ctx context.Context, ex sql.ExecQuerier) error {")
	assert.Contains(t, src, "return m.ToPk().Delete(ctx, ex)")
}

func TestGenRecord_NoUpdate(t *testing.T) {
	src := genSource(t, nil, counterSchema())
	assert.NotContains(t, src, "UpdatableCounter")
	assert.NotContains(t, src, "ToUpdatable")
	assert.NotContains(t, src, "gremlin.Updater")
	assert.Contains(t, src, "func (c *Counter) ToPk() *CounterPk {")
}

func TestGenRecord_Contracts(t *testing.T) {
	src := genSource(t, nil, artistSchema())
	assert.Regexp(t, `_ gremlin.Inserter\[Artist\]\s+= \(\*InsertableArtist\)\(nil\)`, src)
	assert.Regexp(t, `_ gremlin.Updater\[Artist\]\s+= \(\*UpdatableArtist\)\(nil\)`, src)
	assert.Regexp(t, `_ gremlin.Deleter\s+= \(\*ArtistPk\)\(nil\)`, src)
	assert.Regexp(t, `_ gremlin.Deleter\s+= \(\*Artist\)\(nil\)`, src)
	assert.Regexp(t, `_ gremlin.Fetcher\[Artist\]\s+= \(\*ArtistPk\)\(nil\)`, src)
	assert.Regexp(t, `_ gremlin.StreamFunc\[Artist\]\s+= StreamArtists`, src)
}

func TestGenRecord_Unexported(t *testing.T) {
	s := record("track", table("track"),
		field("id", basic("int32"), "id", "pk", "generated"),
		field("Title", basic("string"), "title"),
	)
	src := genSource(t, nil, s)
	assert.Regexp(t, `type insertableTrack struct \{\s+Title string\s+\}`, src)
	assert.Regexp(t, `type trackPk struct \{\s+id int32\s+\}`, src)
	assert.Contains(t, src, "func streamTracks(ctx context.Context, ex sql.ExecQuerier) iter.Seq2[*track, error] {")
	assert.Contains(t, src, "func (t *track) ToPk() *trackPk {")
}

// =============================================================================
// Insert Tests
// =============================================================================

func TestGenCreate_Static(t *testing.T) {
	src := genSource(t, nil, artistSchema())
	assert.Contains(t, src, "// InsertableArtist holds the values inserted into artist.")
	assert.Regexp(t, `type InsertableArtist struct \{\s+Name string\s+\}`, src)
	assert.Contains(t, src, "func (ia *InsertableArtist) Insert(ctx context.Context, ex sql.ExecQuerier) (*Artist, error) {")
	assert.Contains(t, src, `const query = "INSERT INTO artist (name) VALUES ($1) RETURNING id, name, slug"`)
	assert.Contains(t, src, `return gremlin.QueryOne(ctx, ex, "artist", query, []any{ia.Name}, scanArtist)`)
}

func TestGenCreate_Unit(t *testing.T) {
	src := genSource(t, nil, counterSchema())
	assert.Contains(t, src, "type InsertableCounter struct{}")
	assert.Contains(t, src, `const query = "INSERT INTO counter DEFAULT VALUES RETURNING id, created_at"`)
	assert.Contains(t, src, `return gremlin.QueryOne(ctx, ex, "counter", query, nil, scanCounter)`)
}

func TestGenCreate_Cast(t *testing.T) {
	src := genSource(t, nil, personSchema())
	assert.Contains(t, src, `INSERT INTO person (id, name, current_mood, genres) VALUES (CAST($1 AS uuid), $2, CAST($3 AS mood), $4)`)
	assert.Contains(t, src, `RETURNING CAST(id AS uuid) AS id, name, CAST(current_mood AS mood) AS current_mood, genres"`)
	assert.Contains(t, src, "[]any{ip.ID, ip.Name, ip.CurrentMood, pq.Array(ip.Genres)}")
}

func TestGenCreate_Dynamic(t *testing.T) {
	src := genSource(t, nil, defaultableSchema())
	assert.Regexp(t, `Name gremlin.Defaultable\[string\]`, src)
	assert.Regexp(t, `Tags gremlin.Defaultable\[\*\[\]string\]`, src)
	assert.Regexp(t, `Note \*string`, src)
	assert.Contains(t, src, `b := sql.Dialect(dialect.Postgres).Insert("defaultable").Returning(defaultableColumns)`)
	assert.Contains(t, src, `b.Set("note", gremlin.Deref(id.Note))`)
	assert.Contains(t, src, "if v, ok := id.Name.Get(); ok {")
	assert.Contains(t, src, `b.Set("name", v)`)
	assert.Contains(t, src, "if v, ok := id.Tags.Get(); ok {")
	assert.Contains(t, src, `b.Set("tags", gremlin.DerefArray(v))`)
	assert.Contains(t, src, "query, args := b.Query()")
	assert.Contains(t, src, `return gremlin.QueryOne(ctx, ex, "defaultable", query, args, scanDefaultable)`)
	assert.NotContains(t, src, "INSERT INTO defaultable")
}

func TestGenCreate_DynamicCastAndSQLite(t *testing.T) {
	s := record("Release", table("release"),
		field("ID", named("github.com/google/uuid", "UUID"), "id", "pk", "default", "cast=uuid"),
		field("Title", basic("string"), "title"),
	)
	src := genSource(t, &gen.Config{Dialect: "sqlite"}, s)
	assert.Contains(t, src, `b := sql.Dialect(dialect.SQLite).Insert("release").Returning(releaseColumns)`)
	assert.Contains(t, src, `b.Set("title", ir.Title)`)
	assert.Contains(t, src, `b.SetCast("id", "uuid", v)`)
	assert.Regexp(t, `ID\s+gremlin.Defaultable\[uuid.UUID\]`, src)
	assert.Contains(t, src, `const query = "SELECT CAST(id AS uuid) AS id, title FROM release WHERE id = CAST(?1 AS uuid)"`)
}

// =============================================================================
// Update Tests
// =============================================================================

func TestGenUpdate(t *testing.T) {
	src := genSource(t, nil, artistSchema())
	assert.Regexp(t, `type UpdatableArtist struct \{\s+ID\s+int32\s+Name string\s+\}`, src)
	assert.Contains(t, src, "func (ua *UpdatableArtist) Update(ctx context.Context, ex sql.ExecQuerier) (*Artist, error) {")
	assert.Contains(t, src, `const query = "UPDATE artist SET name = $2 WHERE id = $1 RETURNING id, name, slug"`)
	assert.Contains(t, src, `return gremlin.QueryOne(ctx, ex, "artist", query, []any{ua.ID, ua.Name}, scanArtist)`)
	assert.Contains(t, src, "// A missing row is a *gremlin.NotFoundError.")
}

func TestGenUpdate_SoftDelete(t *testing.T) {
	src := genSource(t, nil, softDeleteSchema())
	assert.Regexp(t, `type UpdatableSoftDelete struct \{\s+ID\s+int32\s+Value string\s+\}`, src)
	assert.Contains(t, src, `const query = "UPDATE public.soft_delete SET value = $2 WHERE id = $1 AND deleted_at IS NULL RETURNING id, value, deleted_at"`)
	assert.Contains(t, src, `"soft_delete", query, []any{usd.ID, usd.Value}, scanSoftDelete)`)
	assert.Contains(t, src, "// A missing or soft deleted row is a *gremlin.NotFoundError.")
}

func TestGenUpdate_CompositeKey(t *testing.T) {
	src := genSource(t, nil, membershipSchema())
	assert.Contains(t, src, `const query = "UPDATE membership SET role = $3 WHERE artist_id = $1 AND band_id = $2 RETURNING artist_id, band_id, role"`)
	assert.Contains(t, src, "[]any{um.ArtistID, um.BandID, um.Role}")
}

// =============================================================================
// Pk Tests
// =============================================================================

func TestGenPk(t *testing.T) {
	src := genSource(t, nil, membershipSchema())
	assert.Contains(t, src, "// MembershipPk is the key of a row of membership.")
	assert.Regexp(t, `type MembershipPk struct \{\s+ArtistID int64\s+BandID\s+int64\s+\}`, src)
	assert.Contains(t, src, "func (mp *MembershipPk) Fetch(ctx context.Context, ex sql.ExecQuerier) (*Membership, error) {")
	assert.Contains(t, src, `const query = "SELECT artist_id, band_id, role FROM membership WHERE artist_id = $1 AND band_id = $2"`)
	assert.Contains(t, src, "return gremlin.QueryOptional(ctx, ex, query, []any{mp.ArtistID, mp.BandID}, scanMembership)")
	assert.Contains(t, src, "func (mp *MembershipPk) Delete(ctx context.Context, ex sql.ExecQuerier) error {")
	assert.Contains(t, src, `const query = "DELETE FROM membership WHERE artist_id = $1 AND band_id = $2"`)
	assert.Contains(t, src, "return gremlin.Exec(ctx, ex, query, []any{mp.ArtistID, mp.BandID})")
}

func TestGenPk_SoftDelete(t *testing.T) {
	src := genSource(t, nil, softDeleteSchema())
	assert.Contains(t, src, "// Delete marks the row with the key as deleted by setting deleted_at.")
	assert.Contains(t, src, `const query = "UPDATE public.soft_delete SET deleted_at = NOW() WHERE id = $1"`)
	assert.Contains(t, src, `const query = "SELECT id, value, deleted_at FROM public.soft_delete WHERE id = $1 AND deleted_at IS NULL"`)

	src = genSource(t, &gen.Config{Dialect: "sqlite"}, softDeleteSchema())
	assert.Contains(t, src, `const query = "UPDATE public.soft_delete SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?1"`)
}

func TestGenPk_CastKey(t *testing.T) {
	src := genSource(t, nil, personSchema())
	assert.Contains(t, src, `WHERE id = CAST($1 AS uuid)`)
	assert.Regexp(t, `type PersonPk struct \{\s+ID uuid.UUID\s+\}`, src)
	assert.Contains(t, src, `"github.com/google/uuid"`)
}

// =============================================================================
// Stream Tests
// =============================================================================

func TestGenStream(t *testing.T) {
	src := genSource(t, nil, artistSchema())
	assert.Contains(t, src, "// StreamArtists returns every row of artist, in the order the database yields them.")
	assert.Contains(t, src, "func StreamArtists(ctx context.Context, ex sql.ExecQuerier) iter.Seq2[*Artist, error] {")
	assert.Contains(t, src, `const query = "SELECT id, name, slug FROM artist"`)
	assert.Contains(t, src, "return gremlin.Stream(ctx, ex, query, nil, scanArtist)")

	src = genSource(t, nil, softDeleteSchema())
	assert.Contains(t, src, "func StreamSoftDeletes(")
	assert.Contains(t, src, `const query = "SELECT id, value, deleted_at FROM public.soft_delete WHERE deleted_at IS NULL"`)
}

// =============================================================================
// Generate Tests
// =============================================================================

func TestGenerate(t *testing.T) {
	target := t.TempDir()
	var hooked bool
	c := gen.MustNewConfig(
		gen.WithHooks(func(next gen.Generator) gen.Generator {
			return gen.GenerateFunc(func(ctx context.Context, g *gen.Graph) error {
				hooked = true
				return next.Generate(ctx, g)
			})
		}),
	)
	graph, err := gen.NewGraph(c, inDir(target, artistSchema(), defaultableSchema(), counterSchema())...)
	require.NoError(t, err)
	require.NoError(t, Generate(context.Background(), graph))
	assert.True(t, hooked)

	for _, name := range []string{"artist_gremlin.go", "defaultable_gremlin.go", "counter_gremlin.go"} {
		content, err := os.ReadFile(filepath.Join(target, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(content), "package music")
	}
}

func TestGenerator(t *testing.T) {
	target := t.TempDir()
	c := gen.MustNewConfig(gen.WithGenerator(Generator()))
	graph, err := gen.NewGraph(c, inDir(target, softDeleteSchema())...)
	require.NoError(t, err)
	require.NoError(t, graph.Gen(context.Background()))

	content, err := os.ReadFile(filepath.Join(target, "soft_delete_gremlin.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func StreamSoftDeletes(ctx context.Context, ex sql.ExecQuerier) iter.Seq2[*SoftDelete, error] {")
}
