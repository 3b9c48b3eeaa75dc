// Package main provides the entry point for the prosync CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	// Optional .env for local settings (backend URL, model overrides).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "prosync",
		Short:   "Synchronize a portfolio onto professional profile platforms using a local text-generation backend",
		Version: version,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newExtractCmd(),
		newBuildCmd(),
		newReplyCmd(),
		newAuditCmd(),
		newStatusCmd(),
		newPlatformsCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
