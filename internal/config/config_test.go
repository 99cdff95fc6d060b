// file: internal/config/config_test.go
// version: 1.0.0
// guid: 3b4c5d6e-7f8a-4b9c-8d0e-1f2a3b4c5d6e

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfig_Defaults(t *testing.T) {
	viper.Reset()
	InitConfig()

	assert.Equal(t, "pebble", AppConfig.DatabaseType)
	assert.Equal(t, "movies.pebble", AppConfig.DatabasePath)
	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, 10, AppConfig.Search.DefaultLimit)
	assert.Equal(t, 5000, AppConfig.Search.MaxCandidates)
	assert.Equal(t, 300, AppConfig.RateLimit.RequestsPerMinute)
}

func TestInitConfig_NormalizesDatabaseType(t *testing.T) {
	viper.Reset()
	viper.Set("database_type", "sqlite3")
	InitConfig()
	assert.Equal(t, "sqlite", AppConfig.DatabaseType)

	viper.Reset()
	viper.Set("database_type", "")
	InitConfig()
	assert.Equal(t, "pebble", AppConfig.DatabaseType)
}
