// file: cmd/root.go
// version: 1.2.0
// guid: 8d9e0f1a-2b3c-4d5e-6f7a-8b9c0d1e2f3a

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/config"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/seed"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/server"
)

var cfgFile string
var databasePath string
var databaseType string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "movie-streaming-platform",
	Short: "Movie catalog with ranked fuzzy search",
	Long: `Movie Streaming Platform serves a movie catalog over a REST API with
hybrid ranked search: fuzzy title matching blended with average rating
and watch popularity.

It supports PebbleDB (default) and SQLite storage, user accounts with
session auth, reviews, and per-user watch history.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the REST API server for the movie catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

		srv := server.NewServer(database.GlobalStore)
		cfg := server.GetDefaultServerConfig()

		// Override with command line flags if provided
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a sample movie catalog into the database",
	Long: `Load a movie catalog into the database from a YAML file, or the
built-in sample catalog when no file is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

		opts := seed.Options{
			Path:         config.AppConfig.SeedFile,
			SkipExisting: true,
		}
		if file := cmd.Flag("file").Value.String(); file != "" {
			opts.Path = file
		}
		if cmd.Flag("replace").Value.String() == "true" {
			opts.SkipExisting = false
		}

		result, err := seed.Seed(database.GlobalStore, opts)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		fmt.Printf("Seeding complete: %d inserted, %d skipped\n", result.Inserted, result.Skipped)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.movie-streaming-platform.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "movies.pebble", "path to database (default: movies.pebble for PebbleDB)")
	rootCmd.PersistentFlags().StringVar(&databaseType, "db-type", "pebble", "database type: pebble (default) or sqlite")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("db-type"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)

	// Serve command specific flags
	serveCmd.Flags().String("port", "8080", "port to run the API server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the API server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")

	// Seed command specific flags
	seedCmd.Flags().String("file", "", "YAML catalog to load (default: built-in sample)")
	seedCmd.Flags().Bool("replace", false, "insert entries even when a movie with the same title exists")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".movie-streaming-platform")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Ensure database directory exists
	if databasePath != "" {
		dbDir := filepath.Dir(databasePath)
		if dbDir != "." && dbDir != "" {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				fmt.Printf("Error creating database directory: %v\n", err)
			}
		}
	}

	config.InitConfig()
}
