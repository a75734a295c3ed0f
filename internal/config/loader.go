package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"mathqa/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Default() values in ApplyDefaults.
type Config struct {
	Addr           string   `json:"addr" yaml:"addr" toml:"addr" env:"MATHQA_ADDR" validate:"required"`
	BackendURL     string   `json:"backend_url" yaml:"backend_url" toml:"backend_url" env:"MATHQA_BACKEND_URL" validate:"required,url"`
	ModelName      string   `json:"model_name" yaml:"model_name" toml:"model_name" env:"MATHQA_MODEL_NAME" validate:"required"`
	AllowedOrigin  string   `json:"allowed_origin" yaml:"allowed_origin" toml:"allowed_origin" env:"MATHQA_ALLOWED_ORIGIN" validate:"required"`
	TimeoutSeconds int      `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds" env:"MATHQA_TIMEOUT_SECONDS" validate:"gt=0"`
	Temperature    *float64 `json:"temperature" yaml:"temperature" toml:"temperature" env:"MATHQA_TEMPERATURE" validate:"omitempty,gte=0,lte=2"`
	StopSequences  []string `json:"stop_sequences" yaml:"stop_sequences" toml:"stop_sequences" env:"MATHQA_STOP_SEQUENCES" envSeparator:","`
	SystemPrompt   string   `json:"system_prompt" yaml:"system_prompt" toml:"system_prompt" env:"MATHQA_SYSTEM_PROMPT"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level" env:"MATHQA_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error off"`
	MaxBodyBytes   int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MATHQA_MAX_BODY_BYTES" validate:"gte=0"`
}

var validate = validator.New()

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// OverlayEnv overrides fields of cfg with any MATHQA_* variables that are set.
func OverlayEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first invalid field of cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Resolve builds the effective configuration: file (if path is non-empty),
// then environment, then defaults for anything still unset, then validation.
func Resolve(path string) (Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := OverlayEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
