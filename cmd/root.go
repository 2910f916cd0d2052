// Package cmd (root.go) defines the root command for the sponsorctl CLI. It
// sets up the global flags and registers the subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "sponsorctl",
	Short:   "A CLI client for the sponsorship management dashboard",
	Version: version,
	Long: `sponsorctl is a command-line interface to the sponsorship management API.
It lets you sign in, manage sponsors, events and sponsorships, inspect
statistics, change system settings and upload files.

Every request carries a request ID and W3C trace headers, is bounded by a
timeout and is retried with exponential backoff when the failure is transient.
Authorization failures are never retried; a rejected session is cleared and
you are asked to log in again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and exits non-zero on failure. Ctrl-C cancels
// the in-flight request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging for the API client")
	rootCmd.PersistentFlags().Bool("trace", false, "Print a trace span for every request attempt to stderr")
	rootCmd.PersistentFlags().String("origin", "", "Dashboard origin, e.g. https://sponsors.example.com (default: local development server)")
}
