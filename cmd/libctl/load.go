package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bookledger/library-api/internal/seed"
)

var loadDir string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk load CSV fixtures into the database",
	Long: `Creates the schema when missing, imports authors.csv, books.csv,
readers.csv and book_readers.csv from the fixture directory in one
transaction, then resynchronizes the identity sequences so newly
created rows do not collide with loaded ids.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		pool, err := connect(ctx)
		if err != nil {
			color.New(color.FgRed, color.Bold).Println("connection failed:", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := seed.Load(ctx, pool, loadDir); err != nil {
			color.New(color.FgRed, color.Bold).Println("load failed:", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen, color.Bold)
		green.Println("fixtures loaded")
		fmt.Println("sequences synchronized to the highest loaded ids")
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadDir, "dir", ".", "Directory containing the CSV fixtures")
}
