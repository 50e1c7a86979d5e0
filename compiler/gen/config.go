package gen

import (
	"runtime"

	"github.com/syssam/gremlin/dialect"
)

const (
	defaultHeader = "Code generated by gremlin. DO NOT EDIT."
	defaultSuffix = "_gremlin.go"
)

// Config holds the global codegen configuration shared by all records.
type Config struct {
	// Dialect selects the placeholder style and the SQL functions used in
	// generated statements. One of dialect.Postgres or dialect.SQLite.
	Dialect string
	// Header is the comment written at the top of every generated file.
	Header string
	// Suffix is appended to the snake-cased record name to form the
	// generated file name.
	Suffix string
	// Workers bounds the number of records rendered concurrently.
	Workers int
	// BuildFlags are passed to the package loader.
	BuildFlags []string
	// Generator emits the code of a graph. See compiler/gen/sql.
	Generator Generator
	// Hooks wrap the generator, outermost first.
	Hooks []Hook
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dialect: dialect.Postgres,
		Header:  defaultHeader,
		Suffix:  defaultSuffix,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// NewConfig creates a new config with the given options applied on top of
// the defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) dialect() string {
	if c == nil || c.Dialect == "" {
		return dialect.Postgres
	}
	return c.Dialect
}

func (c *Config) header() string {
	if c == nil || c.Header == "" {
		return defaultHeader
	}
	return c.Header
}

func (c *Config) suffix() string {
	if c == nil || c.Suffix == "" {
		return defaultSuffix
	}
	return c.Suffix
}

func (c *Config) workers() int {
	if c == nil || c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}
