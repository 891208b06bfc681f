// Package config provides the typed fingerseq configuration.
//
// Settings are layered from lowest to highest priority: built-in defaults,
// an optional TOML or YAML file, and FINGERSEQ_ environment variables.
// Command-line flags are applied on top by the CLI.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/fingerseq/internal/config/loader"
)

// maxIncludeDepth bounds nested include directives in config files.
const maxIncludeDepth = 8

// Config holds all fingerseq settings.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Bench   BenchConfig   `toml:"bench"`
	Metrics MetricsConfig `toml:"metrics"`
	Dump    DumpConfig    `toml:"dump"`
	Watch   WatchConfig   `toml:"watch"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// BenchConfig configures the bench command.
type BenchConfig struct {
	Sizes  []int `toml:"sizes"`
	Rounds int   `toml:"rounds"`
	Seed   int64 `toml:"seed"`
}

// MetricsConfig configures metric output.
type MetricsConfig struct {
	// Output is the path of the Prometheus textfile written by bench.
	// Empty disables writing.
	Output string `toml:"output"`
}

// DumpConfig configures the dump command.
type DumpConfig struct {
	// MaxLeaves limits rendered leaves; 0 renders all.
	MaxLeaves int `toml:"max_leaves"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// DebounceMS coalesces bursts of file events.
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Bench: BenchConfig{
			Sizes:  []int{1000, 10000, 100000},
			Rounds: 5,
			Seed:   1,
		},
		Dump:  DumpConfig{MaxLeaves: 64},
		Watch: WatchConfig{DebounceMS: 100},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path skips the file layer. A path that doesn't
// exist returns ErrFileNotFound, since it was asked for explicitly.
func Load(fsys loader.FileSystem, path string, env *loader.EnvLoader) (Config, error) {
	merged, err := Default().toMap()
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		if _, err := fsys.Stat(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		data, err := loader.LoadWithIncludes(fsys, path, maxIncludeDepth)
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if env != nil {
		data, err := env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	var cfg Config
	if err := decode(merged, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// toMap returns c in the generic form produced by the loaders.
func (c Config) toMap() (map[string]any, error) {
	raw, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// decode converts merged settings into cfg. Unknown settings are ignored.
func decode(data map[string]any, cfg *Config) error {
	raw, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}
	if err := toml.NewDecoder(bytes.NewReader(raw)).Decode(cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// Validate checks every setting and returns the first violation as a
// *ValidationError.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level, Code: ErrCodeInvalidEnum}
	}
	if len(c.Bench.Sizes) == 0 {
		return &ValidationError{Path: "bench.sizes", Message: "at least one size is required", Value: c.Bench.Sizes, Code: ErrCodeRequiredMissing}
	}
	for _, n := range c.Bench.Sizes {
		if n <= 0 {
			return &ValidationError{Path: "bench.sizes", Message: "sizes must be positive", Value: n, Code: ErrCodeOutOfRange}
		}
	}
	if c.Bench.Rounds < 1 {
		return &ValidationError{Path: "bench.rounds", Message: "must be at least 1", Value: c.Bench.Rounds, Code: ErrCodeOutOfRange}
	}
	if c.Dump.MaxLeaves < 0 {
		return &ValidationError{Path: "dump.max_leaves", Message: "must not be negative", Value: c.Dump.MaxLeaves, Code: ErrCodeOutOfRange}
	}
	if c.Watch.DebounceMS < 0 {
		return &ValidationError{Path: "watch.debounce_ms", Message: "must not be negative", Value: c.Watch.DebounceMS, Code: ErrCodeOutOfRange}
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, err
	}
	return level, nil
}
