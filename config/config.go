// Package config loads livemd settings from YAML, an optional .env file
// and LIVEMD_* environment variables, in that order of precedence from
// lowest to highest.
package config

import (
	"fmt"
	"os"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rjkroege/livemark/document"
)

const (
	codeReadFailed   = "CONFIG_READ_FAILED"
	codeDecodeFailed = "CONFIG_DECODE_FAILED"
	codeInvalid      = "CONFIG_INVALID"
	codeBadEnv       = "CONFIG_BAD_ENV"
)

type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

type EditorConfig struct {
	SourceView        bool     `yaml:"source_view"`
	MaxPasses         int      `yaml:"max_passes"`
	IncrementalDetect bool     `yaml:"incremental_detect"`
	DisabledSyntax    []string `yaml:"disabled_syntax"`
	HistoryLimit      int      `yaml:"history_limit"`
	BasePath          string   `yaml:"base_path"`
}

type LoggingConfig struct {
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

type ExportConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	Unsafe     bool     `yaml:"unsafe"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			MaxPasses:         4,
			IncrementalDetect: true,
			HistoryLimit:      500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// skips the file. A .env file in the working directory, when present,
// seeds the environment before LIVEMD_* overrides are applied.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryCommand, "config read failed").
				WithTextCode(codeReadFailed)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "config decode failed").
				WithTextCode(codeDecodeFailed)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("LIVEMD_LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := lookup("LIVEMD_LOG_FORMAT"); ok && v != "" {
		cfg.Logging.Format = v
	}
	if v, ok := lookup("LIVEMD_SOURCE_VIEW"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("LIVEMD_SOURCE_VIEW", err)
		}
		cfg.Editor.SourceView = b
	}
	if v, ok := lookup("LIVEMD_MAX_PASSES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("LIVEMD_MAX_PASSES", err)
		}
		cfg.Editor.MaxPasses = n
	}
	return nil
}

func envError(name string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("bad value for %s", name)).
		WithTextCode(codeBadEnv)
}

// DisabledMarks converts DisabledSyntax to mark types. Names are checked
// by Validate; unknown ones are skipped here.
func (c EditorConfig) DisabledMarks() []document.MarkType {
	var out []document.MarkType
	for _, name := range c.DisabledSyntax {
		if t, ok := document.ParseMarkType(name); ok {
			out = append(out, t)
		}
	}
	return out
}
