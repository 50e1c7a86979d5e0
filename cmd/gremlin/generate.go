package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/syssam/gremlin/compiler"
	"github.com/syssam/gremlin/compiler/gen"
	"github.com/syssam/gremlin/compiler/gen/sql"
)

// debounce is how long watch mode waits for changes to settle.
const debounce = 200 * time.Millisecond

// GenerateCmd represents the generate command.
type GenerateCmd struct {
	Patterns []string `arg:"" optional:"" help:"Package patterns to load (default: patterns from the config, or ./...)."`
	Dialect  string   `help:"SQL dialect: postgres or sqlite (overrides the config)."`
	Watch    bool     `help:"Watch the record packages and regenerate on change." short:"w"`
}

// Run executes the generate command.
func (cmd *GenerateCmd) Run(ctx *Context) error {
	cfg, err := LoadConfig(ctx.Config)
	if err != nil {
		return err
	}
	if cmd.Dialect != "" {
		cfg.Dialect = cmd.Dialect
	}
	patterns := cfg.patterns(cmd.Patterns)
	graph, err := generate(context.Background(), ctx, cfg, patterns)
	if err != nil {
		return err
	}
	if !cmd.Watch {
		return nil
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	dirs := packageDirs(graph)
	color.New(color.FgCyan).Fprintf(ctx.Stdout, "Watching %s\n", strings.Join(dirs, ", "))
	return watch(sigCtx, dirs, graph.Suffix, func() []string {
		g, err := generate(sigCtx, ctx, cfg, patterns)
		if err != nil {
			color.New(color.FgRed).Fprintf(ctx.Stdout, "✗ %v\n", err)
			return nil
		}
		return packageDirs(g)
	})
}

// generate loads the records and writes their files.
func generate(ctx context.Context, cctx *Context, cfg *Config, patterns []string) (*gen.Graph, error) {
	start := time.Now()
	gcfg, err := cfg.GenConfig()
	if err != nil {
		return nil, err
	}
	graph, err := compiler.LoadGraph(gcfg, patterns...)
	if err != nil {
		return nil, err
	}
	generator := gen.NewJenniferGenerator(graph)
	generator.WithDialect(sql.NewDialect(generator))
	if err := generator.Generate(ctx); err != nil {
		return nil, err
	}
	m := generator.Metrics()
	slog.Debug("generation done", "records", len(graph.Nodes), "packages", graph.Packages(),
		"bytes", m.TotalBytes, "elapsed", time.Since(start))
	color.New(color.FgGreen).Fprintf(cctx.Stdout, "✓ %d records: %d files written, %d unchanged\n",
		len(graph.Nodes), m.FilesGenerated, m.FilesUnchanged)
	return graph, nil
}

// packageDirs returns the directories holding records, sorted.
func packageDirs(g *gen.Graph) []string {
	var dirs []string
	for _, t := range g.Nodes {
		if !slices.Contains(dirs, t.Pkg.Dir) {
			dirs = append(dirs, t.Pkg.Dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

// isSource reports whether a change to the file can affect generation.
// Generated files and tests are ignored.
func isSource(name, suffix string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".go") &&
		!strings.HasSuffix(base, suffix) &&
		!strings.HasSuffix(base, "_test.go")
}

// watch calls run after source files in dirs change, until ctx is done.
// Bursts of events are coalesced into one run. run returns the record
// directories found by the run, which are watched from then on; nil leaves
// the watched set unchanged.
func watch(ctx context.Context, dirs []string, suffix string, run func() []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	watched := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isSource(ev.Name, suffix) || ev.Op == fsnotify.Chmod {
				continue
			}
			slog.Debug("source changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(debounce)
				continue
			}
			slog.Warn("watcher error", "error", err)
		case <-timer.C:
			for _, dir := range run() {
				if watched[dir] {
					continue
				}
				if err := w.Add(dir); err != nil {
					slog.Warn("failed to watch", "dir", dir, "error", err)
					continue
				}
				slog.Debug("watching", "dir", dir)
				watched[dir] = true
			}
		}
	}
}
