package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Asset Depreciation API
// @version 1.0
// @description Scheduling and catch-up generation of straight-line asset depreciation.

// @host localhost:8080
// @BasePath /api/v1

var rootCmd = &cobra.Command{
	Use:   "depreciation",
	Short: "Asset depreciation scheduler",
	Long: `depreciation records monthly straight-line depreciation for the asset fleet.
It runs as a service polling its database-stored schedule, or on demand from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newDueCommand())
	rootCmd.AddCommand(newMigrateCommand())
}

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
