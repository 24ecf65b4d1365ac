// Package config centralizes runtime configuration. Values come from
// flags, STOCKBOOK_* environment variables and an optional .env file.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    string
	StoreKind   string
	StoreFile   string
	DatabaseURL string
	LogLevel    string
	Development bool
}

// SetDefaults seeds viper with the defaults for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("store", "file")
	v.SetDefault("store-file", "data/stockbook.json")
	v.SetDefault("database-url", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("dev", false)
}

// Load reads the optional .env file and materializes the config from
// viper's merged sources.
func Load(v *viper.Viper) *Config {
	// .env is optional; missing file is not an error
	_ = godotenv.Load()

	return &Config{
		HTTPPort:    v.GetString("port"),
		StoreKind:   v.GetString("store"),
		StoreFile:   v.GetString("store-file"),
		DatabaseURL: v.GetString("database-url"),
		LogLevel:    v.GetString("log-level"),
		Development: v.GetBool("dev"),
	}
}
