// Package cli wires the cobra commands: serve (HTTP API) and console
// (interactive menu). Both build the same engine on top of the configured
// store backend.
package cli

import (
	"strings"

	"go-stockbook/internal/engine"
	"go-stockbook/internal/store"
	"go-stockbook/pkg/config"
	"go-stockbook/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "stockbook",
	Short: "Inventory and profit tracking for a small distribution business",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("store", "file", "store backend: memory|file|postgres")
	rootCmd.PersistentFlags().String("store-file", "data/stockbook.json", "file store path")
	rootCmd.PersistentFlags().String("database-url", "", "postgres DSN for the postgres backend")
	rootCmd.PersistentFlags().String("port", "3000", "HTTP port for serve")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	rootCmd.PersistentFlags().Bool("dev", false, "pretty console logging")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store-file", rootCmd.PersistentFlags().Lookup("store-file"))
	viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("dev", rootCmd.PersistentFlags().Lookup("dev"))

	viper.SetEnvPrefix("STOCKBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())
}

// buildEngine assembles config, logging, store and engine for a command.
func buildEngine() (*engine.Engine, *config.Config, error) {
	cfg := config.Load(viper.GetViper())
	logger.Init("stockbook", cfg.LogLevel, cfg.Development)

	st, err := store.NewStore(cfg.StoreKind, cfg.StoreFile, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(st, logger.Logger), cfg, nil
}
