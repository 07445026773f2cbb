package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/qualitube/internal/logger"
	"github.com/ytget/qualitube/pkg/client"
)

// EnvAPIKey supplies the API key when neither -key nor the config file does.
const EnvAPIKey = "YOUTUBE_API_KEY"

// Config is the resolved CLI configuration. Sources apply in the order
// defaults, config file, environment, flags.
type Config struct {
	APIKey      string            `yaml:"api_key"`
	BaseURL     string            `yaml:"base_url"`
	HTTPTimeout time.Duration     `yaml:"http_timeout"`
	UserAgent   string            `yaml:"user_agent"`
	Proxy       string            `yaml:"proxy"`
	Format      string            `yaml:"format"`
	Log         *logger.LogConfig `yaml:"log"`
}

func defaultConfig() *Config {
	return &Config{
		HTTPTimeout: 30 * time.Second,
		Format:      formatText,
		Log:         logger.DefaultLogConfig(),
	}
}

// loadConfigFile decodes a YAML file over the defaults. Unknown keys are
// rejected.
func loadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- the path comes from the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	if cfg.Log == nil {
		cfg.Log = logger.DefaultLogConfig()
	}
	return cfg, nil
}

// applyEnvironment overrides file values with environment variables.
func (c *Config) applyEnvironment() {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		c.APIKey = key
	}
	c.Log.ApplyEnvironment()
}

// validate checks values that would otherwise fail late.
func (c *Config) validate() error {
	switch c.Format {
	case formatText, formatCSV, formatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want text, csv or json)", c.Format)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must not be negative: %s", c.HTTPTimeout)
	}
	if err := c.Log.ValidateConfig(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// clientConfig maps the HTTP settings onto pkg/client.
func (c *Config) clientConfig() client.Config {
	return client.Config{
		Timeout:   c.HTTPTimeout,
		UserAgent: c.UserAgent,
		ProxyURL:  c.Proxy,
	}
}
