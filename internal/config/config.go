// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/render"
	"github.com/nibzard/todolist-go/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Id strategies.
const (
	IDsClock    = "clock"
	IDsSequence = "sequence"
)

// Default values.
const (
	DefaultFilter    = string(todo.FilterAll)
	DefaultIDs       = IDsClock
	DefaultOutput    = render.FormatText
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for todolist.
type Config struct {
	// Filter active when a session starts (all|active|completed)
	DefaultFilter string `toml:"default_filter"`

	// Go time layout used to display due dates
	DateLayout string `toml:"date_layout"`

	// Id strategy (clock|sequence)
	IDs string `toml:"ids"`

	// Output format for script mode (text|html)
	Output string `toml:"output"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`

	// Computed at load time
	ProjectRoot string `toml:"-"`
}

// setDefaults fills cfg with built-in defaults.
func setDefaults(cfg *Config) {
	cfg.DefaultFilter = DefaultFilter
	cfg.DateLayout = todo.DefaultDisplayLayout
	cfg.IDs = DefaultIDs
	cfg.Output = DefaultOutput
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogFile = ""
}

// Validate checks enumerated values and normalizes their case.
func (c *Config) Validate() error {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	c.DefaultFilter = string(f)

	c.IDs = strings.ToLower(strings.TrimSpace(c.IDs))
	if c.IDs != IDsClock && c.IDs != IDsSequence {
		return fmt.Errorf("ids: must be %s or %s, got %q", IDsClock, IDsSequence, c.IDs)
	}

	if _, err := render.ForFormat(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))

	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		return fmt.Errorf("date_layout: must not be empty")
	}
	return nil
}

// Filter returns the configured start filter, falling back to all.
func (c *Config) Filter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll
	}
	return f
}

// NewIDSource returns a fresh id source for the configured strategy.
func (c *Config) NewIDSource() todo.IDSource {
	if c.IDs == IDsSequence {
		return &todo.SequenceIDs{}
	}
	return todo.NewClockIDs(nil)
}

// LoggingOptions returns logger options for the configured level and format.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	return opts
}

// ControllerOptions returns the todo.Controller options this config implies.
func (c *Config) ControllerOptions() []todo.Option {
	return []todo.Option{
		todo.WithFilter(c.Filter()),
		todo.WithDateLayout(c.DateLayout),
		todo.WithIDSource(c.NewIDSource()),
	}
}
