package gen

import (
	"errors"
	"strings"

	"github.com/syssam/gremlin/dialect"
)

// Option configures code generation.
type Option func(*Config) error

// WithDialect sets the SQL dialect of the generated statements.
// Supported dialects: "postgres", "sqlite".
func WithDialect(name string) Option {
	return func(c *Config) error {
		if !dialect.Supported(name) {
			return NewConfigError("Dialect", name, "unsupported dialect; use postgres or sqlite")
		}
		c.Dialect = name
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithSuffix sets the generated file name suffix.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if !strings.HasSuffix(suffix, ".go") || strings.HasSuffix(suffix, "_test.go") || strings.ContainsAny(suffix, `/\`) {
			return NewConfigError("Suffix", suffix, "suffix must name a non-test Go file, e.g. _gremlin.go")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithWorkers sets the number of records rendered in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading record packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithGenerator sets the code generator.
func WithGenerator(g Generator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("Generator", nil, "generator cannot be nil")
		}
		c.Generator = g
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks are called before/after code generation.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
