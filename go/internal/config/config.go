// Package config reads server settings from the environment, optionally
// layered over a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Auto-pick strategies.
const (
	StrategyAI            = "ai"
	StrategyBestAvailable = "best_available"
)

// Config holds every server setting.
type Config struct {
	Port              string        `yaml:"port"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"` // console or json
	NATSURL           string        `yaml:"nats_url"`   // empty logs events instead
	NATSSubjectPrefix string        `yaml:"nats_subject_prefix"`
	AIProfilesFile    string        `yaml:"ai_profiles_file"`
	PlayerPoolFile    string        `yaml:"player_pool_file"` // empty uses the mock pool
	PlayerPoolURL     string        `yaml:"player_pool_url"`  // takes precedence over the file
	AIThinkMin        time.Duration `yaml:"ai_think_min"`
	AIThinkMax        time.Duration `yaml:"ai_think_max"`
	AISeed            int64         `yaml:"ai_seed"` // 0 seeds from the clock
	AutoPickStrategy  string        `yaml:"auto_pick_strategy"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		LogFormat:         "console",
		NATSSubjectPrefix: "mockdraft",
		AIThinkMin:        300 * time.Millisecond,
		AIThinkMax:        700 * time.Millisecond,
		AutoPickStrategy:  StrategyAI,
		ShutdownTimeout:   10 * time.Second,
	}
}

// NewConfigFromEnv builds the config from defaults, then CONFIG_FILE if set,
// then individual environment variables.
func NewConfigFromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.NATSURL = getEnv("NATS_URL", cfg.NATSURL)
	cfg.NATSSubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", cfg.NATSSubjectPrefix)
	cfg.AIProfilesFile = getEnv("AI_PROFILES_FILE", cfg.AIProfilesFile)
	cfg.PlayerPoolFile = getEnv("PLAYER_POOL_FILE", cfg.PlayerPoolFile)
	cfg.PlayerPoolURL = getEnv("PLAYER_POOL_URL", cfg.PlayerPoolURL)
	cfg.AIThinkMin = getEnvAsDuration("AI_THINK_MIN", cfg.AIThinkMin)
	cfg.AIThinkMax = getEnvAsDuration("AI_THINK_MAX", cfg.AIThinkMax)
	cfg.AISeed = getEnvAsInt64("AI_SEED", cfg.AISeed)
	cfg.AutoPickStrategy = getEnv("AUTO_PICK_STRATEGY", cfg.AutoPickStrategy)
	cfg.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	if c.AIThinkMin < 0 || c.AIThinkMax < c.AIThinkMin {
		errs = append(errs, fmt.Errorf("ai think range %s-%s is invalid", c.AIThinkMin, c.AIThinkMax))
	}
	if c.AutoPickStrategy != StrategyAI && c.AutoPickStrategy != StrategyBestAvailable {
		errs = append(errs, fmt.Errorf("auto_pick_strategy must be %s or %s, got %q", StrategyAI, StrategyBestAvailable, c.AutoPickStrategy))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
