package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/prosync/internal/application/handlers"
	"github.com/ersonp/prosync/internal/domain/entities"
)

func newReplyCmd() *cobra.Command {
	var (
		portfolioURL string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "reply <platform> <message>",
		Short: "Draft a reply to an inbound platform message",
		Long: "Drafts a courteous reply grounded in the portfolio. Without --portfolio the " +
			"draft is generated from the message alone.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReply(cmd, args[0], args[1], portfolioURL, noCache)
		},
	}

	cmd.Flags().StringVar(&portfolioURL, "portfolio", "", "Portfolio source URL to ground the reply")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the extraction cache")

	return cmd
}

func runReply(cmd *cobra.Command, platform, message, portfolioURL string, noCache bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		var record *entities.PortfolioRecord
		if portfolioURL != "" {
			extracted, err := deps.ExtractHandler.Handle(ctx, portfolioURL, handlers.ExtractOptions{UseCache: !noCache})
			if err != nil {
				return fmt.Errorf("extracting portfolio: %w", err)
			}
			record = extracted.Record
		}

		result, err := deps.ReplyHandler.Handle(ctx, platform, record, message)
		if err != nil {
			return err
		}

		fmt.Println(result.Reply)
		return nil
	})
}
