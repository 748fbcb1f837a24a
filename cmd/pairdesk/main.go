// Package main provides the pairdesk command line.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pairdesk/internal/config"
	"github.com/yourusername/pairdesk/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pairdesk",
	Short: "Trading-pair backtest desk",
	Long:  `Serves backtest metrics, subscriptions and payments as filterable tables, and browses them from the console.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
		return nil
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pairdesk %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.AddCommand(serveCmd, importCmd, summaryCmd, tableCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	secretsCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := config.ApplySecretsFromEnv(secretsCtx, loaded); err != nil {
		return err
	}

	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = loaded
	return nil
}
