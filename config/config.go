package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/core/runlog"
	"github.com/kilianp07/confsched/core/scheduler"
)

// EnvPrefix marks environment overrides. Nested keys are separated by a
// double underscore: CONFSCHED_SCHEDULE__SLOT_MINUTES=20.
const EnvPrefix = "CONFSCHED_"

// DotEnvFile is loaded into the environment before overrides are read.
var DotEnvFile = ".env"

type Config struct {
	Schedule scheduler.Config `json:"schedule"`
	IO       IOConfig         `json:"io"`
	RunLog   runlog.Config    `json:"runlog"`
	Metrics  metrics.Config   `json:"metrics"`
	Logging  LoggingConfig    `json:"logging"`
}

// Load reads the configuration file at path, then applies .env and
// environment overrides. An empty path loads defaults plus overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyScheduleFile replaces the schedule section with a standalone
// scheduler config file (yaml or json). Other sections are kept.
func (c *Config) ApplyScheduleFile(path string) error {
	sc, err := scheduler.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("schedule params %s: %w", path, err)
	}
	sc.SetDefaults()
	c.Schedule = sc
	return nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Schedule.SetDefaults()
	c.RunLog.SetDefaults()
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks the sections that can be checked without input data.
// Scheduling parameters are validated when resolved.
func (c Config) Validate() error {
	if err := c.IO.Validate(); err != nil {
		return fmt.Errorf("io: %w", err)
	}
	if err := c.RunLog.Validate(); err != nil {
		return fmt.Errorf("runlog: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
