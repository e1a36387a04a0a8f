// Package config reads process settings from NOVENTA_* environment variables
// and command-line flags. Flags win over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"noventagrados/history"
)

type Config struct {
	UndoMode  string `env:"NOVENTA_UNDO_MODE" envDefault:"checkpoint"`
	Addr      string `env:"NOVENTA_ADDR" envDefault:":8080"`
	Lang      string `env:"NOVENTA_LANG" envDefault:"en"`
	LogLevel  string `env:"NOVENTA_LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"NOVENTA_LOG_PRETTY" envDefault:"true"`
	Web       bool   `env:"NOVENTA_WEB" envDefault:"false"`

	// Set by Validate.
	Strategy history.Strategy
	Level    zerolog.Level
}

// Load parses the environment into a Config without validating it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Parse loads the environment, applies the flags in args and validates the
// result. The first positional argument, when present, is the undo mode.
func Parse(name string, args []string) (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.UndoMode, "mode", cfg.UndoMode, "undo mode: checkpoint (referees, arbitros) or replay (moves, jugadas)")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for -web")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "language of the text interface (en, es)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.LogPretty, "pretty", cfg.LogPretty, "human readable console logs")
	fs.BoolVar(&cfg.Web, "web", cfg.Web, "serve the HTTP API instead of the text interface")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if fs.NArg() == 1 {
		cfg.UndoMode = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once. On success
// Strategy and Level hold the parsed undo mode and log level.
func (c *Config) Validate() error {
	var errs error

	strategy, err := history.ParseStrategy(c.UndoMode)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log level: %w", err))
	}
	if _, err := language.Parse(c.Lang); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("language %q: %w", c.Lang, err))
	}
	if c.Web && c.Addr == "" {
		errs = multierror.Append(errs, errors.New("listen address is empty"))
	}
	if errs != nil {
		return errs
	}

	c.Strategy = strategy
	c.Level = level
	return nil
}
