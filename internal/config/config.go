// Package config loads CLI defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds settings for the ner-eval and ner-cli commands.
// Command-line flags override these values.
type Config struct {
	// Corpus
	Layout        string `env:"NEREVAL_LAYOUT" envDefault:"mirrored"`
	Pattern       string `env:"NEREVAL_PATTERN" envDefault:"*"`
	Charset       string `env:"NEREVAL_CHARSET" envDefault:"utf-8"`
	Normalize     string `env:"NEREVAL_NORMALIZE" envDefault:"none"`
	Workers       int    `env:"NEREVAL_WORKERS" envDefault:"1"`
	Miscellaneous bool   `env:"NEREVAL_MISC" envDefault:"false"`

	// Markup
	Tag  string `env:"NEREVAL_TAG" envDefault:"ENAMEX"`
	Attr string `env:"NEREVAL_ATTR" envDefault:"TYPE"`

	// Output
	Format      string `env:"NEREVAL_FORMAT" envDefault:"muc"`
	Levels      bool   `env:"NEREVAL_LEVELS" envDefault:"false"`
	MetricsFile string `env:"NEREVAL_METRICS_FILE"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
