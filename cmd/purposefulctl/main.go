package main

import (
	"fmt"
	"os"

	"github.com/purposeful/purposeful-backend/internal/config"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"github.com/purposeful/purposeful-backend/internal/repository/postgres"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	flagDatabaseURL string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "purposefulctl",
	Short: "Administer a Purposeful backend",
	Long: `purposefulctl manages the Purposeful database and drives a running
server for local development.

  purposefulctl migrate                          Create or update tables
  purposefulctl seed                             Insert the default tags
  purposefulctl user create --email a@b.c ...    Create an account
  purposefulctl user grant a@b.c Moderator       Change an account's authorities
  purposefulctl simulate --users 5 --ideas 3     Fill a dev server with activity`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "Override DATABASE_URL")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log SQL statements")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDatabase loads the config and connects, applying flag overrides
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDatabaseURL != "" {
		cfg.DatabaseURL = flagDatabaseURL
	}

	logLevel := logger.Silent
	if flagVerbose {
		logLevel = logger.Info
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, logLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func openRepositories() (*config.Config, *repository.Repositories, error) {
	cfg, db, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}
	return cfg, postgres.NewRepositories(db), nil
}
