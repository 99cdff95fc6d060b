// file: internal/config/config.go
// version: 1.1.0
// guid: 2a3b4c5d-6e7f-4a8b-9c0d-1e2f3a4b5c6d

package config

import (
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DatabasePath string
	DatabaseType string // "pebble" (default) or "sqlite"
	SeedFile     string
	Server       struct {
		Host string
		Port string
	}
	RateLimit struct {
		RequestsPerMinute int
		Burst             int
	}
	Search struct {
		DefaultLimit  int
		MaxCandidates int // cap on the candidate set fetched per query
	}
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("database_type", "pebble")
	viper.SetDefault("database_path", "movies.pebble")
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("rate_limit.requests_per_minute", 300)
	viper.SetDefault("rate_limit.burst", 50)
	viper.SetDefault("search.default_limit", 10)
	viper.SetDefault("search.max_candidates", 5000)

	AppConfig = Config{
		DatabasePath: viper.GetString("database_path"),
		DatabaseType: viper.GetString("database_type"),
		SeedFile:     viper.GetString("seed_file"),
	}
	AppConfig.Server.Host = viper.GetString("server.host")
	AppConfig.Server.Port = viper.GetString("server.port")
	AppConfig.RateLimit.RequestsPerMinute = viper.GetInt("rate_limit.requests_per_minute")
	AppConfig.RateLimit.Burst = viper.GetInt("rate_limit.burst")
	AppConfig.Search.DefaultLimit = viper.GetInt("search.default_limit")
	AppConfig.Search.MaxCandidates = viper.GetInt("search.max_candidates")

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
	if AppConfig.DatabaseType == "" {
		AppConfig.DatabaseType = "pebble"
	}
}
