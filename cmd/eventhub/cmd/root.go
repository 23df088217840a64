// Package cmd holds the eventhub command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/eventhub/eventhub/cmd/eventhub/cmd.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "eventhub",
	Short: "eventhub server - event submission, review and participation",
	Long: `eventhub serves the event submission and review application.

Users submit events for approval and join approved ones; admins review the
pending submissions. The remote store is PostgreSQL or SQLite, selected by
BACKEND_URL.`,
	SilenceUsage: true,
	// Run the serve command by default if no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command until it returns or SIGINT/SIGTERM arrives.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
