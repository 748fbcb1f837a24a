package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("pagesizes", validatePageSizes)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validatePageSizes requires a non-empty, strictly increasing list of positive sizes
func validatePageSizes(fl validator.FieldLevel) bool {
	sizes, ok := fl.Field().Interface().([]int)
	if !ok || len(sizes) == 0 {
		return false
	}
	for i, size := range sizes {
		if size < 1 {
			return false
		}
		if i > 0 && size <= sizes[i-1] {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if !slices.Contains(cfg.Table.PageSizes, cfg.Table.DefaultPageSize) {
		return fmt.Errorf("table.default_page_size %d must be one of %v", cfg.Table.DefaultPageSize, cfg.Table.PageSizes)
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	if cfg.Cache.Backend == "redis" && cfg.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when cache.backend is redis")
	}

	if cfg.Scheduler.Enabled {
		if _, err := cron.ParseStandard(cfg.Scheduler.SummaryRefresh); err != nil {
			return fmt.Errorf("invalid scheduler.summary_refresh %q: %w", cfg.Scheduler.SummaryRefresh, err)
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&b, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&b, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "pagesizes":
			fmt.Fprintf(&b, "- Field '%s' must be increasing positive page sizes, got %v\n", field, value)
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
