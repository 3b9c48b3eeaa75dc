package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/prosync/internal/domain/entities"
)

func newAuditCmd() *cobra.Command {
	var (
		platform string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recorded profile runs",
		Long:  "Shows audit entries most recent first. The audit log is append-only: every build run leaves exactly one entry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, platform, limit)
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Filter by platform (linkedin, upwork)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of entries")

	return cmd
}

func runAudit(cmd *cobra.Command, platform string, limit int) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		entries, err := deps.AuditHandler.List(ctx, platform, limit)
		if err != nil {
			return fmt.Errorf("listing audit entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No audit entries found.")
			return nil
		}

		fmt.Printf("Found %d entries:\n\n", len(entries))
		for i, entry := range entries {
			printAuditEntry(i+1, entry)
		}
		return nil
	})
}

func printAuditEntry(n int, entry entities.AuditEntry) {
	fmt.Printf("%d. [%s] %s  %s\n", n, entry.Platform, entry.Outcome, entry.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if entry.ProfileURL != "" {
		fmt.Printf("   Profile: %s\n", entry.ProfileURL)
	}
	if entry.FromCache {
		fmt.Println("   Source: cached extraction")
	}
	for _, fd := range entry.Diff.Fields {
		fmt.Printf("   %-12s %s", fd.Field, fd.Kind)
		if fd.Outcome != "" {
			fmt.Printf(" -> %s", fd.Outcome)
		}
		fmt.Println()
	}
	fmt.Println()
}
