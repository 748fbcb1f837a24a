package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PAIRDESK"

// DefaultPath is used when no config path is given.
const DefaultPath = "config/config.yaml"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")
	v.SetDefault("server.port", 8080)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("redis.prefix", "pairdesk:")
	v.SetDefault("table.page_sizes", []int{5, 10, 20, 50})
	v.SetDefault("table.default_page_size", 10)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("scheduler.summary_refresh", "@every 5m")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout_seconds", 10)
	v.SetDefault("client.retry_attempts", 3)
	v.SetDefault("client.requests_per_second", 5)
	return v
}

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data)
}

// LoadWithDefaults behaves like Load but tolerates a missing file, in which
// case only defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	v := newViper()

	if len(data) > 0 {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{"database.password", "redis.addr", "redis.password", "client.base_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
