// Package config loads the YAML file describing where the CLI's lists come from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Logger struct {
	Level string `yaml:"level"`
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const (
	BindNone    = "none"
	BindPointer = "pointer"
)

// Database selects the driver serving the lists.
// The postgres driver is pgx, mysql goes through database/sql.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// List binds a list name to a query.
// Bind is "none" (the default) or "pointer" to pass the pointer as the
// only query argument.
type List struct {
	Query string `yaml:"query"`
	Bind  string `yaml:"bind"`
}

type Config struct {
	Logger   Logger          `yaml:"logger"`
	Database Database        `yaml:"database"`
	Lists    map[string]List `yaml:"lists"`
}

// Parse decodes and validates a configuration
func Parse(bs []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, err
	}

	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// NewFromFile reads the configuration at fpath
func NewFromFile(fpath string) (*Config, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	c, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fpath, err)
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("database.driver: unknown driver %q", c.Database.Driver)
	}

	for name, l := range c.Lists {
		if l.Query == "" {
			return fmt.Errorf("list %q has no query", name)
		}

		switch l.Bind {
		case "", BindNone, BindPointer:
		default:
			return fmt.Errorf("list %q: unknown bind %q", name, l.Bind)
		}
	}

	return nil
}
