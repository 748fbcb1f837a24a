// Package config provides configuration management for the pairdesk service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Table     TableConfig     `mapstructure:"table" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Client    ClientConfig    `mapstructure:"client" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API listener
type ServerConfig struct {
	Host                string   `mapstructure:"host"`
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	CORSOrigins         []string `mapstructure:"cors_origins"`
}

// CacheConfig selects the summary cache backend
type CacheConfig struct {
	Backend    string `mapstructure:"backend" validate:"required,oneof=memory redis none"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"required,gt=0"`
}

// RedisConfig is required when the cache backend is redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

// TableConfig holds the list view paging options
type TableConfig struct {
	PageSizes       []int `mapstructure:"page_sizes" validate:"required,pagesizes"`
	DefaultPageSize int   `mapstructure:"default_page_size" validate:"required,gt=0"`
	// DeriveWorkers bounds concurrent metric derivation; 0 means GOMAXPROCS.
	DeriveWorkers int `mapstructure:"derive_workers" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig holds cron specs for background jobs
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	SummaryRefresh string `mapstructure:"summary_refresh"`
}

// ClientConfig configures the console client
type ClientConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ServerAddress returns the host:port the API listens on
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// CacheTTL returns the summary cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// ClientTimeout returns the console client request timeout
func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.Client.TimeoutSeconds) * time.Second
}
