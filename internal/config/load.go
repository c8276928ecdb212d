package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// field binds one setting to its TOML key, environment variable and flag.
type field struct {
	key   string
	env   string
	flag  string
	usage string
	value func(*Config) *string
}

// configFields returns every configurable field in display order.
func configFields() []field {
	return []field{
		{"default_filter", "TODOLIST_FILTER", "filter", "Filter shown at start (all|active|completed)",
			func(c *Config) *string { return &c.DefaultFilter }},
		{"date_layout", "TODOLIST_DATE_LAYOUT", "date-layout", "Go time layout for due dates",
			func(c *Config) *string { return &c.DateLayout }},
		{"ids", "TODOLIST_IDS", "ids", "Task id strategy (clock|sequence)",
			func(c *Config) *string { return &c.IDs }},
		{"output", "TODOLIST_OUTPUT", "output", "Script output format (text|html)",
			func(c *Config) *string { return &c.Output }},
		{"log_level", "TODOLIST_LOG_LEVEL", "log-level", "Log level (debug|info|warn|error)",
			func(c *Config) *string { return &c.LogLevel }},
		{"log_format", "TODOLIST_LOG_FORMAT", "log-format", "Log format (text|json|logfmt)",
			func(c *Config) *string { return &c.LogFormat }},
		{"log_file", "TODOLIST_LOG_FILE", "log-file", "Append logs to this file",
			func(c *Config) *string { return &c.LogFile }},
	}
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todolist/todolist.toml or OS-specific config dir)
// 3. Project config file (todolist.toml or .todolist.toml in current directory)
// 4. .env file in the current directory
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return load(fs, args, nil)
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of TOML keys to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg, err := load(fs, args, sources)
	if err != nil {
		return nil, err
	}
	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

// load is the shared implementation. A nil sources map disables tracking.
func load(fs *flag.FlagSet, args []string, sources map[string]ConfigSource) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)
	for _, f := range configFields() {
		setSource(sources, f.key, SourceDefault)
	}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4 + 5. Environment, with .env values below real variables
	dotenv, err := readDotEnv(dotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}
	loadFromEnv(cfg, dotenv, sources)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile decodes TOML from path into cfg and records which keys
// the file set. Unknown keys are an error.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	for _, f := range configFields() {
		if md.IsDefined(f.key) {
			setSource(sources, f.key, source)
		}
	}
	return nil
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
		if !filepath.IsAbs(cfg.LogFile) {
			cfg.LogFile = filepath.Join(cfg.ProjectRoot, cfg.LogFile)
		}
	}

	return cfg.Validate()
}

func setSource(sources map[string]ConfigSource, key string, source ConfigSource) {
	if sources != nil {
		sources[key] = source
	}
}

// Keys returns the TOML keys in display order.
func Keys() []string {
	fields := configFields()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	return keys
}

// Value returns the current value for a TOML key, or "" if unknown.
func (c *Config) Value(key string) string {
	for _, f := range configFields() {
		if f.key == key {
			return *f.value(c)
		}
	}
	return ""
}
