// Package config loads ldflex settings from a TOML file.
//
// A file looks like:
//
//	database  = "ontologies.db"
//	format    = "json"
//	log_level = "debug"
//
//	[profiles]
//	summary = "only(acronym, name)"
//	full    = "all except(submissions)"
//
// Keys missing from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/RobertCoop/ontologies-linked-data/codec"
	"github.com/RobertCoop/ontologies-linked-data/flex"
	"github.com/RobertCoop/ontologies-linked-data/selection"
)

// Config holds the CLI settings.
type Config struct {
	// Database is the SQLite DSN of the triple store.
	Database string `toml:"database"`
	// Format is the default output codec name.
	Format string `toml:"format"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Profiles maps a profile name to a selection expression.
	Profiles map[string]string `toml:"profiles"`
}

// ProfileNotFoundError is returned by Profile for an undefined name.
type ProfileNotFoundError struct {
	Name      string
	Available []string
}

func (e *ProfileNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("profile %q not found (none defined)", e.Name)
	}
	return fmt.Sprintf("profile %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Database: "ldflex.db",
		Format:   "json",
		LogLevel: "info",
	}
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the format, log level and every profile expression.
func (c Config) Validate() error {
	var errs []error
	if c.Database == "" {
		errs = append(errs, errors.New("database must not be empty"))
	}
	if _, err := codec.ByName(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.ProfileNames() {
		if _, err := selection.Parse(c.Profiles[name]); err != nil {
			errs = append(errs, fmt.Errorf("profile %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// ProfileNames returns the defined profile names in sorted order.
func (c Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Profile returns the options of the named profile.
func (c Config) Profile(name string) (flex.Options, error) {
	expr, ok := c.Profiles[name]
	if !ok {
		return flex.Options{}, &ProfileNotFoundError{Name: name, Available: c.ProfileNames()}
	}
	return selection.Parse(expr)
}
