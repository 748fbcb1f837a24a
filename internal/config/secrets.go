package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Environment variables controlling the secrets overlay.
const (
	EnvSecretsEnabled = EnvPrefix + "_AWS_SECRETS_ENABLED"
	EnvSecretsRegion  = "AWS_REGION"
	EnvSecretName     = "AWS_SECRET_NAME"
)

var errNoSecretData = errors.New("no secret data found in AWS Secrets Manager")

// SecretsOverlay represents the structure of secrets stored in AWS Secrets Manager
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	RedisPassword    string `json:"redis_password"`
}

// SecretsEnabled reports whether the overlay was switched on through the environment.
func SecretsEnabled() bool {
	return os.Getenv(EnvSecretsEnabled) == "true"
}

// ApplySecretsFromEnv loads the overlay when SecretsEnabled, reading the
// region and secret name from the environment.
func ApplySecretsFromEnv(ctx context.Context, cfg *Config) error {
	if !SecretsEnabled() {
		return nil
	}
	region := os.Getenv(EnvSecretsRegion)
	secretName := os.Getenv(EnvSecretName)
	if region == "" || secretName == "" {
		return fmt.Errorf("%s and %s must be set when %s is true", EnvSecretsRegion, EnvSecretName, EnvSecretsEnabled)
	}
	return LoadSecretsFromAWS(ctx, cfg, region, secretName)
}

// LoadSecretsFromAWS retrieves secrets from AWS Secrets Manager and overlays them onto the configuration
func LoadSecretsFromAWS(ctx context.Context, cfg *Config, region, secretName string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return fmt.Errorf("failed to get secret from AWS Secrets Manager: %w", err)
	}

	secrets, err := parseSecretData(result)
	if err != nil {
		return err
	}

	overlaySecretsOnConfig(cfg, secrets)
	return nil
}

func parseSecretData(result *secretsmanager.GetSecretValueOutput) (*SecretsOverlay, error) {
	var secrets SecretsOverlay
	switch {
	case result.SecretString != nil:
		if err := json.Unmarshal([]byte(*result.SecretString), &secrets); err != nil {
			return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
		}
	case result.SecretBinary != nil:
		if err := json.Unmarshal(result.SecretBinary, &secrets); err != nil {
			return nil, fmt.Errorf("failed to parse secret binary: %w", err)
		}
	default:
		return nil, errNoSecretData
	}
	return &secrets, nil
}

func overlaySecretsOnConfig(cfg *Config, secrets *SecretsOverlay) {
	if secrets.DatabasePassword != "" {
		cfg.Database.Password = secrets.DatabasePassword
	}
	if secrets.RedisPassword != "" {
		cfg.Redis.Password = secrets.RedisPassword
	}
}
