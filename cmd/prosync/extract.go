package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/prosync/internal/application/handlers"
	"github.com/ersonp/prosync/internal/domain/entities"
)

func newExtractCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "extract <portfolio-url>",
		Short: "Extract a portfolio record from a portfolio site",
		Long:  "Fetches the portfolio page, converts it to a structured record, and caches the result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the extraction cache and fetch fresh data")

	return cmd
}

func runExtract(cmd *cobra.Command, sourceURL string, noCache bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		result, err := deps.ExtractHandler.Handle(ctx, sourceURL, handlers.ExtractOptions{UseCache: !noCache})
		if err != nil {
			return fmt.Errorf("extracting portfolio: %w", err)
		}

		fmt.Printf("%s\n\n", result.Message)
		printRecord(result.Record)

		return nil
	})
}

func printRecord(record *entities.PortfolioRecord) {
	fmt.Printf("Name:     %s\n", record.Identity.Name)
	if record.Identity.Title != "" {
		fmt.Printf("Title:    %s\n", record.Identity.Title)
	}
	fmt.Printf("Email:    %s\n", record.Identity.Email)
	if record.Identity.Location != "" {
		fmt.Printf("Location: %s\n", record.Identity.Location)
	}

	fmt.Printf("\nExperience: %d positions (~%d years)\n", len(record.Experience), record.ExperienceYears())
	for _, pos := range record.Experience {
		fmt.Printf("  - %s, %s", pos.Title, pos.Organization)
		if pos.Duration != "" {
			fmt.Printf(" (%s)", pos.Duration)
		}
		fmt.Println()
	}

	if len(record.Education) > 0 {
		fmt.Printf("\nEducation: %d entries\n", len(record.Education))
		for _, deg := range record.Education {
			fmt.Printf("  - %s", deg.Institution)
			if deg.Degree != "" {
				fmt.Printf(", %s", deg.Degree)
			}
			fmt.Println()
		}
	}

	skills := record.AllSkills()
	if len(skills) > 0 {
		fmt.Printf("\nSkills (%d):\n", len(skills))
		for _, skill := range skills {
			fmt.Printf("  - %s\n", skill)
		}
	}

	if len(record.Testimonials) > 0 {
		fmt.Printf("\nTestimonials: %d\n", len(record.Testimonials))
	}
}
