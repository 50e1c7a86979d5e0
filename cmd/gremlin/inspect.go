package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/syssam/gremlin/compiler"
	"github.com/syssam/gremlin/compiler/gen"
)

// InspectCmd represents the inspect command.
type InspectCmd struct {
	Patterns []string `arg:"" optional:"" help:"Package patterns to load (default: patterns from the config, or ./...)."`
	Dialect  string   `help:"SQL dialect: postgres or sqlite (overrides the config)."`
}

// Run executes the inspect command.
func (cmd *InspectCmd) Run(ctx *Context) error {
	cfg, err := LoadConfig(ctx.Config)
	if err != nil {
		return err
	}
	if cmd.Dialect != "" {
		cfg.Dialect = cmd.Dialect
	}
	gcfg, err := cfg.GenConfig()
	if err != nil {
		return err
	}
	graph, err := compiler.LoadGraph(gcfg, cfg.patterns(cmd.Patterns)...)
	if err != nil {
		return err
	}
	return writeReport(ctx.Stdout, graph)
}

type recordReport struct {
	Record     string          `yaml:"record"`
	Table      string          `yaml:"table"`
	File       string          `yaml:"file"`
	SoftDelete string          `yaml:"soft_delete,omitempty"`
	Shapes     []shapeReport   `yaml:"shapes"`
	Statements []gen.NamedPlan `yaml:"statements"`
}

type shapeReport struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields,flow"`
}

func newRecordReport(t *gen.Type) recordReport {
	r := recordReport{
		Record:     t.Name,
		Table:      t.Table,
		File:       t.Path(),
		Statements: t.Plans(),
	}
	if t.SoftDelete != nil {
		r.SoftDelete = t.SoftDelete.Column
	}
	r.Shapes = append(r.Shapes, newShapeReport(t.InsertableShape()))
	if s, ok := t.UpdatableShape(); ok {
		r.Shapes = append(r.Shapes, newShapeReport(s))
	}
	r.Shapes = append(r.Shapes, newShapeReport(t.PkShape()))
	return r
}

func newShapeReport(s *gen.Shape) shapeReport {
	r := shapeReport{Name: s.Name, Fields: []string{}}
	for _, f := range s.Fields {
		typ := f.Type.String()
		if f.Wrapped {
			typ = fmt.Sprintf("Defaultable[%s]", typ)
		}
		r.Fields = append(r.Fields, f.Name+" "+typ)
	}
	return r
}

// writeReport writes one YAML document per record.
func writeReport(w io.Writer, g *gen.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, t := range g.Nodes {
		if err := enc.Encode(newRecordReport(t)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", t.Name, err)
		}
	}
	return enc.Close()
}
