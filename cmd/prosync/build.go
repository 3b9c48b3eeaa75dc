package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/prosync/internal/application/handlers"
	"github.com/ersonp/prosync/internal/domain/entities"
)

func newBuildCmd() *cobra.Command {
	var (
		portfolioURL string
		profileURL   string
		username     string
		password     string
		noCache      bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "build <platform>",
		Short: "Generate platform profile content from a portfolio",
		Long: "Extracts the portfolio, generates platform-tailored content, diffs it against " +
			"the live profile when one can be observed, and applies the changes when " +
			"credentials are supplied. Without credentials the run renders content for " +
			"manual entry.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], buildFlags{
				portfolioURL: portfolioURL,
				profileURL:   profileURL,
				username:     username,
				password:     password,
				noCache:      noCache,
				dryRun:       dryRun,
			})
		},
	}

	cmd.Flags().StringVar(&portfolioURL, "portfolio", "", "Portfolio source URL (required)")
	cmd.Flags().StringVar(&profileURL, "profile-url", "", "Live profile URL for snapshotting")
	cmd.Flags().StringVar(&username, "username", "", "Platform username (or PROSYNC_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Platform password (or PROSYNC_PASSWORD)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the extraction cache")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render content only, never open an automation session")
	_ = cmd.MarkFlagRequired("portfolio")

	return cmd
}

type buildFlags struct {
	portfolioURL string
	profileURL   string
	username     string
	password     string
	noCache      bool
	dryRun       bool
}

func runBuild(cmd *cobra.Command, platform string, flags buildFlags) error {
	ctx := cmd.Context()

	parsed, err := entities.ParsePlatform(platform)
	if err != nil {
		return err
	}

	creds := resolveCredentials(flags)

	return withDeps(ctx, func(deps *Deps) error {
		extracted, err := deps.ExtractHandler.Handle(ctx, flags.portfolioURL, handlers.ExtractOptions{UseCache: !flags.noCache})
		if err != nil {
			return fmt.Errorf("extracting portfolio: %w", err)
		}
		fmt.Printf("%s\n", extracted.Message)

		result, err := deps.BuildHandler.Handle(ctx, handlers.BuildRequest{
			Platform:    parsed,
			Record:      extracted.Record,
			ProfileURL:  flags.profileURL,
			Credentials: creds,
		})
		if err != nil {
			return fmt.Errorf("building profile: %w", err)
		}

		printBuildResult(result)
		return nil
	})
}

// resolveCredentials reads credentials from flags, falling back to the
// environment. A dry run discards them so the run can never automate.
func resolveCredentials(flags buildFlags) entities.Credentials {
	if flags.dryRun {
		return entities.Credentials{}
	}

	creds := entities.Credentials{Username: flags.username, Password: flags.password}
	if creds.Username == "" {
		creds.Username = os.Getenv("PROSYNC_USERNAME")
	}
	if creds.Password == "" {
		creds.Password = os.Getenv("PROSYNC_PASSWORD")
	}
	return creds
}

func printBuildResult(result *handlers.BuildResult) {
	candidate := result.Candidate

	fmt.Printf("\nGenerated %s profile:\n\n", candidate.Platform)
	for _, field := range candidate.Platform.FieldOrder() {
		if issue, ok := candidate.FieldIssues[field]; ok {
			fmt.Printf("%s: (generation failed: %s)\n\n", field, issue)
			continue
		}
		if value, ok := candidate.FieldValue(field); ok {
			fmt.Printf("%s:\n%s\n\n", field, value)
		}
	}

	if result.Diff.Empty() {
		fmt.Println("No changes proposed.")
	} else {
		fmt.Printf("Proposed changes (%d fields", len(result.Diff.Fields))
		if result.SnapshotUsed {
			fmt.Print(", against live snapshot")
		}
		fmt.Println("):")
		for _, fd := range result.Diff.Fields {
			fmt.Printf("  %-12s %s", fd.Field, fd.Kind)
			if fd.Outcome != "" {
				fmt.Printf(" -> %s", fd.Outcome)
			}
			if fd.Error != "" {
				fmt.Printf(" (%s)", fd.Error)
			}
			fmt.Println()
		}
	}

	fmt.Printf("\nRun state: %s\n", result.State)
	if result.ApplyErr != "" {
		fmt.Printf("Apply error: %s\n", result.ApplyErr)
	}
	if result.State == entities.StateRendered {
		fmt.Println("Copy the content above into the platform manually.")
	}
	fmt.Printf("Audit entry: %s\n", result.AuditID)
}
