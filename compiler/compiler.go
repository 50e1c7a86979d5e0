// Package compiler provides an API for loading gremlin records from Go
// packages and generating their code.
//
//	err := compiler.Generate(ctx, []string{"./models/..."}, gen.WithDialect("sqlite"))
package compiler

import (
	"context"
	"fmt"

	"github.com/syssam/gremlin/compiler/gen"
	"github.com/syssam/gremlin/compiler/gen/sql"
	"github.com/syssam/gremlin/compiler/load"
)

// LoadGraph loads the records of the packages matched by patterns and
// creates the graph. A nil config uses gen.DefaultConfig.
func LoadGraph(cfg *gen.Config, patterns ...string) (*gen.Graph, error) {
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	schemas, err := (&load.Config{Patterns: patterns, BuildFlags: cfg.BuildFlags}).Load()
	if err != nil {
		return nil, err
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("compiler: no //gremlin:entity records found in %v", patterns)
	}
	return gen.NewGraph(cfg, schemas...)
}

// Generate loads the records matched by patterns and generates their code.
// The SQL dialect generator is used unless one is set with gen.WithGenerator.
func Generate(ctx context.Context, patterns []string, opts ...gen.Option) error {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	if cfg.Generator == nil {
		cfg.Generator = sql.Generator()
	}
	graph, err := LoadGraph(cfg, patterns...)
	if err != nil {
		return err
	}
	return graph.Gen(ctx)
}
