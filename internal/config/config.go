package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt      = "tsh> "
	DefaultMaxJobs     = 16
	DefaultHistorySize = 1000
	historyFileName    = ".tsh_history"

	// EnvPrefix prefixes every environment override, e.g. TSH_MAX_JOBS.
	EnvPrefix = "TSH_"
)

type Config struct {
	Prompt      string `yaml:"prompt" toml:"prompt"`
	EmitPrompt  bool   `yaml:"emit_prompt" toml:"emit_prompt"`
	Verbose     bool   `yaml:"verbose" toml:"verbose"`
	MaxJobs     int    `yaml:"max_jobs" toml:"max_jobs"`
	HistoryFile string `yaml:"history_file" toml:"history_file"`
	HistorySize int    `yaml:"history_size" toml:"history_size"`
	MergeStderr bool   `yaml:"merge_stderr" toml:"merge_stderr"`
	HomeDir     string `yaml:"home_dir" toml:"home_dir"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Prompt:      DefaultPrompt,
		EmitPrompt:  true,
		MaxJobs:     DefaultMaxJobs,
		HistorySize: DefaultHistorySize,
		MergeStderr: true,
	}
}

// Load builds the configuration from defaults, the optional file at path and
// TSH_* environment variables, in that order. A missing file is not an error.
// Files ending in .toml are read as TOML, anything else as YAML.
func Load(file string) (*Config, error) {
	cfg := Default()

	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		default:
			if err := unmarshal(file, data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", file, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if cfg.HomeDir == "" {
		// Without a home directory history simply is not persisted.
		cfg.HomeDir, _ = os.UserHomeDir()
	}

	if cfg.HistoryFile == "" && cfg.HomeDir != "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, historyFileName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the shell cannot run with.
func (c *Config) Validate() error {
	if c.MaxJobs < 1 {
		return fmt.Errorf("max_jobs must be at least 1, got %d", c.MaxJobs)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	return nil
}

func unmarshal(file string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv overlays TSH_* variables. lookup is os.LookupEnv outside tests.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "PROMPT"); ok {
		c.Prompt = v
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_FILE"); ok {
		c.HistoryFile = v
	}
	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"EMIT_PROMPT", &c.EmitPrompt},
		{"VERBOSE", &c.Verbose},
		{"MERGE_STDERR", &c.MergeStderr},
	} {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
		*b.dst = parsed
	}
	for _, n := range []struct {
		name string
		dst  *int
	}{
		{"MAX_JOBS", &c.MaxJobs},
		{"HISTORY_SIZE", &c.HistorySize},
	} {
		v, ok := lookup(EnvPrefix + n.name)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, n.name, err)
		}
		*n.dst = parsed
	}
	return nil
}
