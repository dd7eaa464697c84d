package main

import (
	"fmt"
	"os"

	"rc-building-model/internal/config"
	"rc-building-model/internal/logging"
	"rc-building-model/internal/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath string
	logEnv  string
)

var rootCmd = &cobra.Command{
	Use:   "rcbm",
	Short: "Residential heat loss and heat demand calculator",
	Long: `rcbm - residential building heat loss model

Estimates fabric and ventilation heat loss, the heat loss parameter and the
annual space heating demand of a stock of dwellings following ` + version.Methodology + `.

Examples:
  rcbm assess --data buildings.csv --out results/assessment.csv
  rcbm demand --hlc 121,150
  rcbm profiles`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML model config (defaults to DEAP values)")
	rootCmd.PersistentFlags().StringVar(&logEnv, "log-env", "development", "Log format: development or production")
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return &config.Config{}, nil
	}
	return config.Load(cfgPath)
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logEnv)
}
