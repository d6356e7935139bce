// Package config loads CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/joeshaw/envdecode"
)

// Config for the csvskema command. Defaults can be loaded via envdecode;
// command-line flags override every field.
type Config struct {
	// Delimiter is a single character. ENV: CSVSKEMA_DELIMITER
	// The "," default cannot be written in the tag; fill applies it.
	Delimiter string `env:"CSVSKEMA_DELIMITER"`
	// Strict stops at the first bad record. ENV: CSVSKEMA_STRICT
	Strict bool `env:"CSVSKEMA_STRICT,default=false"`
	// Lang selects error messages, "en" or "ja". ENV: CSVSKEMA_LANG
	Lang string `env:"CSVSKEMA_LANG,default=en"`
	// LogLevel is debug|info|warn|error. ENV: CSVSKEMA_LOG_LEVEL
	LogLevel string `env:"CSVSKEMA_LOG_LEVEL,default=info"`
	// LogFormat is text|json. ENV: CSVSKEMA_LOG_FORMAT
	LogFormat string `env:"CSVSKEMA_LOG_FORMAT,default=text"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Delimiter: ",", Lang: "en", LogLevel: "info", LogFormat: "text"}
}

// FromEnv decodes Config from the environment, falling back to Default for
// anything left empty.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Default(), fmt.Errorf("config: %w", err)
	}
	cfg.fill()
	return cfg, nil
}

func (c *Config) fill() {
	d := Default()
	if c.Delimiter == "" {
		c.Delimiter = d.Delimiter
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
}

// Validate checks the delimiter and the enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Sep(); err != nil {
		errs = append(errs, err)
	}
	switch c.Lang {
	case "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("config: unknown lang %q (want en or ja)", c.Lang))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q (want text or json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Sep returns the delimiter rune.
func (c Config) Sep() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("config: delimiter must be exactly one character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("config: unusable delimiter %q", c.Delimiter)
	}
	return r, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return l, nil
}
