// Package cliconfig loads and validates the dotlanth CLI's own
// configuration: where the run store lives, the default logging level
// and format, and the default register count new VM programs start
// with. It is independent of dotDSL document configuration, which
// lives in internal/dotdsl.
package cliconfig

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config is the CLI's own configuration surface, decoded from YAML.
type Config struct {
	StorePath     string `yaml:"store_path" validate:"required"`
	LogLevel      string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat     string `yaml:"log_format" validate:"omitempty,oneof=human json"`
	RegisterCount int    `yaml:"register_count" validate:"omitempty,min=1,max=65536"`
}

// Default constants mirrored by Defaults and applied by ApplyDefaults.
const (
	DefaultStorePath     = "./dotlanth.db"
	DefaultLogLevel      = "info"
	DefaultRegisterCount = 32
)

// Defaults returns a Config populated with dotlanth's built-in
// defaults. LogFormat is resolved from whether stdout is a terminal
// rather than a fixed literal.
func Defaults() Config {
	return Config{
		StorePath:     DefaultStorePath,
		LogLevel:      DefaultLogLevel,
		LogFormat:     detectLogFormat(),
		RegisterCount: DefaultRegisterCount,
	}
}

func detectLogFormat() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "human"
	}
	return "json"
}

// Load reads and decodes a YAML config file at path, applies
// ApplyDefaults to any zero-valued fields, and validates the result.
// A missing file is not an error: Defaults() is returned instead.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read cli config %s: %w", path, err)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse cli config %s: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("validate cli config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDefaults fills any zero-valued field of cfg with dotlanth's
// built-in default, in place.
func ApplyDefaults(cfg *Config) {
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = detectLogFormat()
	}
	if cfg.RegisterCount == 0 {
		cfg.RegisterCount = DefaultRegisterCount
	}
}

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	return validatorInstance().Struct(cfg)
}

var validate = validator.New()

func validatorInstance() *validator.Validate { return validate }
