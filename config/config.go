package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// EnvPath overrides the default config location.
const EnvPath = "ZINNIA_CONFIG"

type Config struct {
	Tuya        TuyaConfig        `yaml:"tuya"`
	Retry       RetryConfig       `yaml:"retry"`
	Routine     RoutineConfig     `yaml:"routine"`
	Interactive InteractiveConfig `yaml:"interactive"`
	Pushover    PushoverConfig    `yaml:"pushover"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Log         LogConfig         `yaml:"log"`
}

type TuyaConfig struct {
	AccessID  string `yaml:"access_id"`
	AccessKey string `yaml:"access_key"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	DeviceID  string `yaml:"device_id"`
	Timeout   string `yaml:"timeout"`
}

type RetryConfig struct {
	MaxAttempts  int    `yaml:"max_attempts"`
	InitialDelay string `yaml:"initial_delay"`
	MaxDelay     string `yaml:"max_delay"`
}

type RoutineConfig struct {
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Step  int    `yaml:"step"`
	Delay string `yaml:"delay"`
}

type InteractiveConfig struct {
	Pause string `yaml:"pause"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultPath is $ZINNIA_CONFIG, falling back to ~/.config/zinnia/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "zinnia", "config.yaml")
}

func Load(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Tuya.Region == "" {
		c.Tuya.Region = "us"
	}
	if c.Tuya.Timeout == "" {
		c.Tuya.Timeout = "15s"
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialDelay == "" {
		c.Retry.InitialDelay = "100ms"
	}
	if c.Retry.MaxDelay == "" {
		c.Retry.MaxDelay = "5s"
	}
	if c.Routine.Start == 0 && c.Routine.End == 0 && c.Routine.Step == 0 {
		c.Routine.Start, c.Routine.End, c.Routine.Step = 10, 100, 10
	}
	if c.Routine.Delay == "" {
		c.Routine.Delay = "10s"
	}
	if c.Interactive.Pause == "" {
		c.Interactive.Pause = "1s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.Tuya.AccessID == "" {
		errs = append(errs, errors.New("tuya.access_id is required"))
	}
	if c.Tuya.AccessKey == "" {
		errs = append(errs, errors.New("tuya.access_key is required"))
	}
	if c.Tuya.DeviceID == "" {
		errs = append(errs, errors.New("tuya.device_id is required"))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts))
	}

	durations := []struct{ key, value string }{
		{"tuya.timeout", c.Tuya.Timeout},
		{"retry.initial_delay", c.Retry.InitialDelay},
		{"retry.max_delay", c.Retry.MaxDelay},
		{"routine.delay", c.Routine.Delay},
		{"interactive.pause", c.Interactive.Pause},
	}
	for _, d := range durations {
		if _, err := time.ParseDuration(d.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.key, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Duration parses a value already checked by Validate.
func Duration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}
