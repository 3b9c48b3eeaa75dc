package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check generation backend readiness",
		Long:  "Probes the local text-generation backend and reports whether the configured model is available.",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		result := deps.StatusHandler.Handle(ctx)

		fmt.Printf("Backend: %s\n", deps.Config.Backend.BaseURL)
		fmt.Printf("Model:   %s\n", result.Model)
		if result.Ready {
			fmt.Println("Status:  ready")
			return nil
		}
		fmt.Println("Status:  unavailable")
		fmt.Printf("Reason:  %s\n", result.Err)
		return nil
	})
}
