// Package config loads expect settings from YAML or INI files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/poll"
)

// Config holds runtime settings shared by the CLI and suites.
type Config struct {
	// Poll holds the default timeout, intervals and message.
	Poll poll.Config `yaml:"poll"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Verbose enables caller information in log output.
	Verbose bool `yaml:"verbose"`

	// Concurrency bounds the checks a suite runs at once.
	Concurrency int `yaml:"concurrency"`

	// MonitorAddr, when set, serves live poll events.
	MonitorAddr string `yaml:"monitor_addr"`

	// HistoryPath, when set, is the SQLite database that
	// outcomes are recorded in.
	HistoryPath string `yaml:"history_path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Poll:        poll.DefaultConfig(),
		LogLevel:    "info",
		Concurrency: 4,
	}
}

// Load reads path over the defaults. The format is chosen by
// extension: .yaml, .yml or .ini.
func Load(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = loadYAML(path, cfg)
	case ".ini":
		err = loadINI(path, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func loadINI(path string, cfg *Config) error {
	f, err := ini.LoadSources(
		ini.LoadOptions{IgnoreInlineComment: true}, path,
	)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	root := f.Section(ini.DefaultSection)
	cfg.LogLevel = root.Key("log_level").MustString(cfg.LogLevel)
	cfg.Verbose = root.Key("verbose").MustBool(cfg.Verbose)
	cfg.Concurrency = root.Key("concurrency").MustInt(cfg.Concurrency)
	cfg.MonitorAddr = root.Key("monitor_addr").MustString(cfg.MonitorAddr)
	cfg.HistoryPath = root.Key("history_path").MustString(cfg.HistoryPath)

	sec := f.Section("poll")
	if sec.HasKey("timeout") {
		d, err := sec.Key("timeout").Duration()
		if err != nil {
			return fmt.Errorf("config %s: poll.timeout: %w", path, err)
		}
		cfg.Poll.Timeout = d
	}
	if sec.HasKey("intervals") {
		intervals, err := ParseIntervals(sec.Key("intervals").String())
		if err != nil {
			return fmt.Errorf("config %s: poll.intervals: %w", path, err)
		}
		cfg.Poll.Intervals = intervals
	}
	cfg.Poll.Message = sec.Key("message").MustString(cfg.Poll.Message)
	return nil
}

// ParseIntervals parses a comma-separated list of durations such
// as "100ms, 250ms, 1s".
func ParseIntervals(s string) ([]time.Duration, error) {
	var intervals []time.Duration
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, d)
	}
	return intervals, nil
}

// Validate checks the poll settings, the log level and the
// concurrency.
func (c *Config) Validate() error {
	if err := c.Poll.Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d",
			c.Concurrency)
	}
	return nil
}

// Level returns the parsed log level, or info if it is invalid.
func (c *Config) Level() logging.LogLevel {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// PollOptions returns the options applying the configured poll
// settings.
func (c *Config) PollOptions() []poll.Option {
	return []poll.Option{poll.WithConfig(c.Poll)}
}
