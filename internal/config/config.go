// Package config loads docrefs settings from an optional YAML file, the
// environment, and built-in defaults.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/suggest"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "docrefs.yaml"

// Config represents the docrefs configuration.
type Config struct {
	Root           string    `yaml:"root"`            // Project root all link paths are relative to
	RedirectsFile  string    `yaml:"redirects_file"`  // Empty: auto-detect <root>/.gitbook.yaml
	NavigationFile string    `yaml:"navigation_file"` // Empty: structure.summary of the redirects file, else SUMMARY.md
	CheckAnchors   bool      `yaml:"check_anchors"`
	Fix            FixConfig `yaml:"fix"`
	Log            LogConfig `yaml:"log"`
	MetricsFile    string    `yaml:"metrics_file"` // Prometheus textfile written after each run
}

// FixConfig controls automatic rewriting.
type FixConfig struct {
	MinConfidence   string `yaml:"min_confidence"`
	AddRedirects    *bool  `yaml:"add_redirects"`
	RequireCleanGit bool   `yaml:"require_clean_git"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads the configuration at path. An empty path uses DefaultFile when
// it exists and built-in defaults otherwise; an explicit path must exist.
// A .env file in the working directory is loaded first and ${VAR}
// references in the file are expanded.
func Load(path string) (*Config, error) {
	loadEnvFile()

	cfg := &Config{}
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	// #nosec G304 -- configuration path is chosen by the operator.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, errors.ConfigError("failed to parse configuration").Wrap(err).
				WithContext("path", path).
				Build()
		}
	case explicit || !os.IsNotExist(err):
		return nil, errors.ConfigError("failed to read configuration").Wrap(err).
			WithContext("path", path).
			Build()
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Fix.MinConfidence = strings.ToLower(strings.TrimSpace(cfg.Fix.MinConfidence))
	if cfg.Fix.MinConfidence == "" {
		cfg.Fix.MinConfidence = suggest.ConfidenceHigh.String()
	}
	if cfg.Fix.AddRedirects == nil {
		enabled := true
		cfg.Fix.AddRedirects = &enabled
	}
	cfg.Log.Level = NormalizeLogLevel(string(cfg.Log.Level))
	cfg.Log.Format = NormalizeLogFormat(string(cfg.Log.Format))
}

// MinConfidence returns the parsed fix.min_confidence.
func (c *Config) MinConfidence() suggest.Confidence {
	conf, err := suggest.ParseConfidence(c.Fix.MinConfidence)
	if err != nil {
		return suggest.ConfidenceHigh
	}
	return conf
}

// AddRedirects reports whether fixes append redirect entries.
func (c *Config) AddRedirects() bool {
	return c.Fix.AddRedirects == nil || *c.Fix.AddRedirects
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Config{
		Root:         "./docs",
		CheckAnchors: true,
		Fix: FixConfig{
			MinConfidence:   "high",
			RequireCleanGit: true,
		},
		Log: LogConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.InternalError("failed to encode example configuration").Wrap(err).Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.FileSystemError("failed to write configuration").Wrap(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
