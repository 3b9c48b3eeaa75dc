package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/prosync/internal/domain/entities"
)

func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported profile platforms",
		RunE:  runPlatforms,
	}
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	fmt.Println("Supported platforms:")
	for _, info := range entities.Platforms() {
		fmt.Printf("\n  %s (%s)\n", info.Name, info.ID)
		fmt.Printf("    %s\n", info.Description)
		fmt.Printf("    Fields: ")
		for i, field := range info.ID.FieldOrder() {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(field)
		}
		fmt.Println()
	}
	return nil
}
