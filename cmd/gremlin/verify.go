package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	// Drivers selectable with database.driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/gremlin/compiler"
	"github.com/syssam/gremlin/compiler/gen"
)

// ErrNoDatabaseURL is returned by verify when no database is configured.
var ErrNoDatabaseURL = errors.New("no database URL: set database.url, DATABASE_URL or --database-url")

// VerifyCmd represents the verify command.
type VerifyCmd struct {
	Patterns    []string `arg:"" optional:"" help:"Package patterns to load (default: patterns from the config, or ./...)."`
	DatabaseURL string   `help:"Database URL (overrides the config and DATABASE_URL)." name:"database-url"`
	Driver      string   `help:"database/sql driver: pgx, postgres or sqlite (overrides the config)."`
}

// Run executes the verify command.
func (cmd *VerifyCmd) Run(ctx *Context) error {
	cfg, err := LoadConfig(ctx.Config)
	if err != nil {
		return err
	}
	if cmd.DatabaseURL != "" {
		cfg.Database.URL = cmd.DatabaseURL
	}
	if cmd.Driver != "" {
		cfg.Database.Driver = cmd.Driver
	}
	if cfg.Database.URL == "" {
		return ErrNoDatabaseURL
	}
	gcfg, err := cfg.GenConfig()
	if err != nil {
		return err
	}
	graph, err := compiler.LoadGraph(gcfg, cfg.patterns(cmd.Patterns)...)
	if err != nil {
		return err
	}
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	return verify(context.Background(), ctx.Stdout, db, graph)
}

// preparer is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// verify prepares every statement of every record and reports the ones the
// database rejects.
func verify(ctx context.Context, w io.Writer, db preparer, g *gen.Graph) error {
	var (
		total  int
		failed []error
	)
	for _, t := range g.Nodes {
		for _, p := range t.Plans() {
			total++
			stmt, err := db.PrepareContext(ctx, p.SQL)
			if err != nil {
				failed = append(failed, fmt.Errorf("%s %s: %w", t.Name, p.Op, err))
				color.New(color.FgRed).Fprintf(w, "✗ %s %s\n    %s\n    %v\n", t.Name, p.Op, p.SQL, err)
				continue
			}
			stmt.Close()
			color.New(color.FgGreen).Fprintf(w, "✓ %s %s\n", t.Name, p.Op)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("verify: %d of %d statements failed: %w", len(failed), total, errors.Join(failed...))
	}
	color.New(color.FgGreen).Fprintf(w, "%d statements verified\n", total)
	return nil
}
