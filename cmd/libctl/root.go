package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/bookledger/library-api/internal/config"
	"github.com/bookledger/library-api/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "libctl",
	Short: "Operational tooling for the library database",
	Long: `libctl manages the library database outside the request path.

Examples:

  libctl load --dir ./fixtures
  libctl sync-sequences
`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(syncCmd)
}

// connect builds a pgx pool from the same environment configuration the
// server uses and verifies it with a ping.
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg := config.Load()
	log.Init(cfg.LogLevel, cfg.LogFile)

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}
