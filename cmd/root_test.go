// file: cmd/root_test.go
// version: 1.1.0
// guid: 9e0f1a2b-3c4d-4e5f-6a7b-8c9d0e1f2a3b

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	assert.Equal(t, "movie-streaming-platform", rootCmd.Use)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"], "serve command should be registered")
	assert.True(t, names["seed"], "seed command should be registered")
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "db", "db-type"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "missing persistent flag %q", name)
	}

	assert.Equal(t, "movies.pebble", rootCmd.PersistentFlags().Lookup("db").DefValue)
	assert.Equal(t, "pebble", rootCmd.PersistentFlags().Lookup("db-type").DefValue)
}

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"port", "host", "read-timeout", "write-timeout", "idle-timeout"} {
		flag := serveCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "missing serve flag %q", name)
	}
	assert.Equal(t, "8080", serveCmd.Flags().Lookup("port").DefValue)
}

func TestSeedFlags(t *testing.T) {
	require.NotNil(t, seedCmd.Flags().Lookup("file"))
	replace := seedCmd.Flags().Lookup("replace")
	require.NotNil(t, replace)
	assert.Equal(t, "false", replace.DefValue)
}
