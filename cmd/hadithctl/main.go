// Command hadithctl runs the daily pick, random pick and filtered listings
// against the configured database without going through HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"hadithapi/internal/config"
	"hadithapi/internal/database"
	"hadithapi/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// keep stdout clean for JSON
	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	open := func() (*gorm.DB, error) {
		return database.Connect(cfg.Database, logger)
	}

	if err := newRootCmd(cfg, open, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
