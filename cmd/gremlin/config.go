package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/gremlin/compiler/gen"
	"github.com/syssam/gremlin/dialect"
)

// Config represents the gremlin.yaml configuration.
type Config struct {
	Dialect    string   `yaml:"dialect"`
	Patterns   []string `yaml:"patterns"`
	BuildFlags []string `yaml:"build_flags"`
	Header     string   `yaml:"header"`
	Workers    int      `yaml:"workers"`
	Suffix     string   `yaml:"suffix"`
	Database   Database `yaml:"database"`
}

// Database represents the database used by the verify command.
type Database struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

// LoadConfig loads the configuration file at path. A missing file yields the
// defaults. ${VAR} references are expanded from the environment, after .env
// is loaded when present.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}
	cfg := &Config{}
	buf, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(buf)))))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.setDefaults()
	return cfg, nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Dialect == "" {
		c.Dialect = dialect.Postgres
	}
	if len(c.Patterns) == 0 {
		c.Patterns = []string{"./..."}
	}
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
	if c.Database.Driver == "" {
		c.Database.Driver = defaultDriver(c.Dialect)
	}
}

func defaultDriver(d string) string {
	if d == dialect.SQLite {
		return "sqlite"
	}
	return "pgx"
}

// patterns returns the package patterns given on the command line, or the
// configured ones.
func (c *Config) patterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return c.Patterns
}

// Options returns the generator options of the configuration.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{gen.WithDialect(c.Dialect)}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Suffix != "" {
		opts = append(opts, gen.WithSuffix(c.Suffix))
	}
	if c.Workers != 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	if len(c.BuildFlags) > 0 {
		opts = append(opts, gen.WithBuildFlags(c.BuildFlags...))
	}
	return opts
}

// GenConfig creates the generator configuration.
func (c *Config) GenConfig() (*gen.Config, error) {
	return gen.NewConfig(c.Options()...)
}
