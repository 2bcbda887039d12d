package main

import (
	"context"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Regenerate the course recommendation from already-uploaded transcripts",
	Long:  "Ask the advisory service for a fresh recommendation over the transcripts already on the account. The new recommendation replaces the active one.",
	RunE:  runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	reco, err := app.orch.GenerateRecommendation(ctx)
	if err != nil {
		return err
	}

	app.printer.PrintRecommendation(reco)
	return nil
}
