package sql

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gremlin/compiler/gen"
)

// Generate generates the code of the graph with the SQL dialect. Hooks
// registered in the graph config wrap the generator, as in (*gen.Graph).Gen.
//
//	graph, err := gen.NewGraph(cfg, schemas...)
//	if err != nil {
//		return err
//	}
//	err = sql.Generate(ctx, graph)
func Generate(ctx context.Context, g *gen.Graph) error {
	var next gen.Generator = Generator()
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		next = g.Hooks[i](next)
	}
	return next.Generate(ctx, g)
}

// Generator returns a gen.Generator rendering the graph with the SQL dialect.
// It is the value usually passed to gen.WithGenerator.
func Generator() gen.Generator {
	return gen.GenerateFunc(func(ctx context.Context, g *gen.Graph) error {
		generator := gen.NewJenniferGenerator(g)
		generator.WithDialect(NewDialect(generator))
		return generator.Generate(ctx)
	})
}

// Dialect implements gen.RecordGenerator for SQL databases.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new SQL dialect generator.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sql"
}

// GenRecord generates the companion file of the record.
func (d *Dialect) GenRecord(t *gen.Type) *jen.File {
	h := d.helper
	f := h.NewFile(t)
	genRecord(h, f, t)
	genCreate(h, f, t)
	genUpdate(h, f, t)
	genPk(h, f, t)
	genStream(h, f, t)
	genContracts(h, f, t)
	return f
}

var _ gen.RecordGenerator = (*Dialect)(nil)
