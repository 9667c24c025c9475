package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Performance PerformanceConfig `yaml:"performance"`
	Retry       RetryConfig       `yaml:"retry"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Rules  string `yaml:"rules"`
}

type PerformanceConfig struct {
	MaxConcurrent     int `yaml:"max_concurrent"`
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	FixedDelay  time.Duration `yaml:"fixed_delay"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding one or more
	// comma-separated API keys.
	APIKeyEnv string `yaml:"api_key_env"`
}

type OutputConfig struct {
	Suffix string `yaml:"suffix"`
	Docx   bool   `yaml:"docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path and fills defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads the given .env files into the process environment, skipping
// files that do not exist. Variables already set win.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env %s: %w", p, err)
		}
	}
	return nil
}

// APIKeys returns the non-empty keys found in the configured variable.
func (c *Config) APIKeys() []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv(c.Gemini.APIKeyEnv), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		c.Paths.Input = "."
	}
	if c.Paths.Output == "" {
		c.Paths.Output = c.Paths.Input
	}
	if c.Paths.Rules == "" {
		c.Paths.Rules = "rules.txt"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 3
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = 5 * time.Second
	}
	if c.Retry.FixedDelay == 0 {
		c.Retry.FixedDelay = 2 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.Output.Suffix == "" {
		c.Output.Suffix = "_rag"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must be positive")
	}
	if c.Performance.RequestsPerMinute < 0 {
		return fmt.Errorf("performance.requests_per_minute must not be negative")
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must be positive")
	}
	if c.Retry.BaseDelay < 0 || c.Retry.FixedDelay < 0 {
		return fmt.Errorf("retry delays must not be negative")
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix must not contain path separators")
	}

	return nil
}
