// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for TravelGo.
// Every command resolves the configuration, opens the session store and talks
// to the backend through the repositories; screens render through view-models
// with a loading indicator and a retry prompt on failure.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"travelgo/cli/internal/logging"
)

var (
	showVersion bool
	baseURLFlag string
	verboseFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "travelgo",
	Short:         "TravelGo CLI: sign in, browse travel packages and book them",
	Long:          `TravelGo is a command-line client for the TravelGo backend. It keeps your session in the OS keychain and lets you browse packages and make reservations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "travelgo %s\n", Version)
			if cfg, err := resolveConfig(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "backend %s\n", cfg.BaseURL)
			}
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application. Interrupts cancel in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			pterm.Error.Println(logging.PresentError("travelgo", err))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and backend address")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Backend base URL (overrides config and TRAVELGO_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log requests and responses at debug level")
}
