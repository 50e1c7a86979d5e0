package gen

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/syssam/gremlin/compiler/load"
)

type (
	// Graph holds the records of one generation run.
	Graph struct {
		*Config
		// Nodes are the records, in load order.
		Nodes []*Type
	}

	// Generator is the interface that wraps the Generate method.
	Generator interface {
		// Generate generates the code of the given graph.
		Generate(context.Context, *Graph) error
	}

	// GenerateFunc type is an adapter to allow the use of ordinary
	// functions as Generator.
	GenerateFunc func(context.Context, *Graph) error

	// Hook defines the "generate middleware". A function that gets a
	// Generator and returns a Generator. For example:
	//
	//	hook := func(next gen.Generator) gen.Generator {
	//		return gen.GenerateFunc(func(ctx context.Context, g *gen.Graph) error {
	//			fmt.Println("Graph:", g)
	//			return next.Generate(ctx, g)
	//		})
	//	}
	Hook func(Generator) Generator
)

// Generate calls f(ctx, g).
func (f GenerateFunc) Generate(ctx context.Context, g *Graph) error {
	return f(ctx, g)
}

// NewGraph creates a new graph from the loaded schemas. All record errors
// are collected and returned together, so one run reports every problem.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		c = DefaultConfig()
	}
	g := &Graph{Config: c, Nodes: make([]*Type, 0, len(schemas))}
	var errs []error
	for _, s := range schemas {
		t, err := NewType(c, s)
		if err != nil {
			errs = append(errs, withPos(s.Pos, err))
			continue
		}
		g.Nodes = append(g.Nodes, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := g.checkIdents(); err != nil {
		return nil, err
	}
	return g, nil
}

// Gen generates the code of the graph with the configured generator,
// wrapped by the configured hooks.
func (g *Graph) Gen(ctx context.Context) error {
	if g.Generator == nil {
		return NewConfigError("Generator", nil, "no generator set: use WithGenerator, e.g. with compiler/gen/sql")
	}
	var gen Generator = g.Generator
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		gen = g.Hooks[i](gen)
	}
	return gen.Generate(ctx, g)
}

// Packages returns the import paths of the packages holding records, in
// first-seen order.
func (g *Graph) Packages() []string {
	var pkgs []string
	for _, t := range g.Nodes {
		if !slices.Contains(pkgs, t.Pkg.Path) {
			pkgs = append(pkgs, t.Pkg.Path)
		}
	}
	return pkgs
}

// checkIdents reports generated identifiers that collide with a record or
// with an identifier generated for another record of the same package.
func (g *Graph) checkIdents() error {
	var errs []error
	owner := make(map[string]*Type)
	key := func(t *Type, id string) string { return t.Pkg.Path + "." + id }
	for _, t := range g.Nodes {
		owner[key(t, t.Name)] = t
	}
	for _, t := range g.Nodes {
		for _, id := range t.Idents() {
			if o, ok := owner[key(t, id)]; ok {
				msg := fmt.Sprintf("generated identifier %s collides with record %s", id, o.Name)
				if o.Name != id {
					msg = fmt.Sprintf("generated identifier %s is also generated for record %s", id, o.Name)
				}
				errs = append(errs, withPos(t.Pos(), NewSchemaError(t.Name, "", msg, nil)))
				continue
			}
			owner[key(t, id)] = t
		}
	}
	return errors.Join(errs...)
}

func withPos(pos string, err error) error {
	if pos == "" {
		return err
	}
	return fmt.Errorf("%s: %w", pos, err)
}
