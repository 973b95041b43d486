package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bookledger/library-api/internal/seed"
)

var syncCmd = &cobra.Command{
	Use:   "sync-sequences",
	Short: "Resynchronize identity sequences with table contents",
	Long: `Sets each table's id sequence to the highest id currently stored,
fixing the duplicate key errors that follow a bulk load with explicit
ids.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		pool, err := connect(ctx)
		if err != nil {
			color.New(color.FgRed, color.Bold).Println("connection failed:", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := seed.SyncSequences(ctx, pool); err != nil {
			color.New(color.FgRed, color.Bold).Println("sync failed:", err)
			os.Exit(1)
		}

		color.New(color.FgGreen, color.Bold).Println("sequences synchronized")
	},
}
