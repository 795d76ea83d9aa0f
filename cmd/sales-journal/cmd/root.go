// Package cmd provides CLI commands for sales-journal.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

var (
	cfgFile  string
	debug    bool
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sales-journal",
	Short: "Record shop sales and review revenue",
	Long: `sales-journal is a point-of-sale journal for a single shop.

It supports:
- Recording sales against a fixed product catalog with stock checks
- Listing and deleting recorded sales
- Revenue trends (daily, weekly, monthly), category breakdown and best sellers
- Exporting sales to Beancount ledger files

Example:
  sales-journal add --product 101 --qty 2
  sales-journal dashboard --period weekly
  sales-journal export --from 2025-01-01 --to 2025-01-31`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug || os.Getenv("DEBUG") == "true" {
			logLevel.Set(slog.LevelDebug)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err == nil {
		return
	}

	slog.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	if errors.Is(err, store.ErrStorageCorrupt) {
		fmt.Fprintln(os.Stderr, "The journal data cannot be read. Run 'sales-journal reset --yes' to start over (this deletes all records).")
	}
	os.Exit(1)
}
