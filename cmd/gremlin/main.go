// Command gremlin generates the CRUD companion code of Go records marked
// with the //gremlin:entity directive.
//
//	gremlin generate ./...
//	gremlin generate --watch ./models
//	gremlin inspect ./models
//	gremlin verify --database-url postgres://localhost/music ./models
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

// Context is passed to every command.
type Context struct {
	Config  string
	Verbose bool
	Stdout  io.Writer
}

// CLI represents the command-line interface.
var CLI struct {
	Config   string      `help:"Configuration file path." default:"gremlin.yaml" short:"c"`
	Verbose  bool        `help:"Enable debug logging." short:"v"`
	Generate GenerateCmd `cmd:"" help:"Generate the code of the records."`
	Inspect  InspectCmd  `cmd:"" help:"Print the shapes and statements of the records as YAML."`
	Verify   VerifyCmd   `cmd:"" help:"Prepare every statement against a live database."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// VersionCmd represents the version command.
type VersionCmd struct{}

// Run executes the version command.
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "gremlin", buildVersion())
	return nil
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gremlin"),
		kong.Description("Compile-time CRUD code generator for Go records."),
		kong.UsageOnError(),
	)
	setupLogging(CLI.Verbose)

	err := ctx.Run(&Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Stdout:  os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
