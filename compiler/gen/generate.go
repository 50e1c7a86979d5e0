package gen

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/gremlin/compiler/load"
)

// Import paths referenced by generated code.
const (
	runtimePkg = "github.com/syssam/gremlin"
	sqlPkg     = "github.com/syssam/gremlin/dialect/sql"
)

// JenniferGenerator generates code using Jennifer. Records are rendered and
// formatted in parallel, in memory; files are written only once every record
// rendered successfully, so a failing run leaves no partial output.
type JenniferGenerator struct {
	graph   *Graph
	workers int
	dialect RecordGenerator

	mu      sync.Mutex
	metrics *Metrics
}

// Metrics tracks generation output.
type Metrics struct {
	FilesGenerated int
	FilesUnchanged int
	TotalBytes     int64
}

// NewJenniferGenerator creates a new Jennifer-based generator.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/gremlin/compiler/gen/sql"
//
//	gen := gen.NewJenniferGenerator(graph)
//	gen.WithDialect(sql.NewDialect(gen))
//	gen.Generate(ctx)
func NewJenniferGenerator(g *Graph) *JenniferGenerator {
	return &JenniferGenerator{
		graph:   g,
		workers: g.workers(),
		metrics: &Metrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithDialect sets the record generator.
func (g *JenniferGenerator) WithDialect(d RecordGenerator) *JenniferGenerator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// Metrics returns the generation metrics.
func (g *JenniferGenerator) Metrics() *Metrics {
	return g.metrics
}

// rendered is the formatted source of one generated file.
type rendered struct {
	path string
	src  []byte
}

// Generate renders every record and writes the generated files.
// Returns an error if no dialect has been set via WithDialect().
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	files := make([]rendered, len(g.graph.Nodes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, t := range g.graph.Nodes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := g.render(t)
			if err != nil {
				return err
			}
			files[i] = rendered{path: t.Path(), src: src}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, f := range files {
		if err := g.writeFile(f); err != nil {
			return err
		}
	}
	return nil
}

// render generates the file of one record and formats it.
func (g *JenniferGenerator) render(t *Type) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.dialect.GenRecord(t).Render(&buf); err != nil {
		return nil, NewGenerationError("render", t.FileName(), t.Name, err)
	}
	src, err := imports.Process(t.Path(), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, NewGenerationError("format", t.FileName(), t.Name, err)
	}
	return src, nil
}

// writeFile writes a rendered file, leaving files with identical content untouched.
func (g *JenniferGenerator) writeFile(f rendered) error {
	if prev, err := os.ReadFile(f.path); err == nil && bytes.Equal(prev, f.src) {
		g.mu.Lock()
		g.metrics.FilesUnchanged++
		g.mu.Unlock()
		slog.Debug("file unchanged", "path", f.path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return NewGenerationError("write", f.path, "create directory", err)
	}
	if err := os.WriteFile(f.path, f.src, 0o644); err != nil {
		return NewGenerationError("write", f.path, "", err)
	}
	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(f.src))
	g.mu.Unlock()
	slog.Debug("wrote file", "path", f.path, "bytes", len(f.src))
	return nil
}

// =============================================================================
// GeneratorHelper interface implementation
// These exported methods allow dialect packages to access helper functionality.
// =============================================================================

// NewFile creates a new Jennifer file in the record's package with the
// header comment.
func (g *JenniferGenerator) NewFile(t *Type) *jen.File {
	f := jen.NewFilePathName(t.Pkg.Path, t.Pkg.Name)
	f.HeaderComment(g.graph.header())
	return f
}

// GoType returns the Jennifer code for a field's Go type.
func (g *JenniferGenerator) GoType(f *Field) jen.Code {
	return typeCode(f.Type)
}

// RuntimePkg returns the import path of the gremlin runtime package.
func (g *JenniferGenerator) RuntimePkg() string { return runtimePkg }

// SQLPkg returns the import path of the dialect/sql package.
func (g *JenniferGenerator) SQLPkg() string { return sqlPkg }

// Graph returns the record graph.
func (g *JenniferGenerator) Graph() *Graph { return g.graph }

// Verify JenniferGenerator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*JenniferGenerator)(nil)

// typeCode spells a loaded type. Types of the record's own package are
// left unqualified by Jennifer.
func typeCode(ti *load.TypeInfo) jen.Code {
	if ti == nil {
		return jen.Any()
	}
	switch ti.Kind {
	case load.TypeBasic:
		return jen.Id(ti.Name)
	case load.TypePointer:
		return jen.Op("*").Add(typeCode(ti.Elem))
	case load.TypeSlice:
		return jen.Index().Add(typeCode(ti.Elem))
	case load.TypeArray:
		return jen.Index(jen.Lit(int(ti.Len))).Add(typeCode(ti.Elem))
	case load.TypeMap:
		return jen.Map(typeCode(ti.Key)).Add(typeCode(ti.Elem))
	case load.TypeNamed:
		var id *jen.Statement
		if ti.PkgPath == "" {
			id = jen.Id(ti.Name)
		} else {
			id = jen.Qual(ti.PkgPath, ti.Name)
		}
		if len(ti.Args) > 0 {
			args := make([]jen.Code, len(ti.Args))
			for i, a := range ti.Args {
				args[i] = typeCode(a)
			}
			id = id.Types(args...)
		}
		return id
	default:
		return jen.Id(ti.Name)
	}
}
