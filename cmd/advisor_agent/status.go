package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/advisor-agent/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the account's transcripts, summaries, and session state",
	Long:  "Fetch the account's uploaded transcripts and saved summaries concurrently and show them alongside the restored local session state.",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var transcripts []types.Transcript
	var summaries []types.Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transcripts, err = app.client.ListTranscripts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summaries, err = app.client.ListSummaries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	snap := app.orch.Snapshot()
	fmt.Fprintf(os.Stdout, "Session stage: %s\n", snap.Stage)
	if snap.ActiveRecommendationID != 0 {
		fmt.Fprintf(os.Stdout, "Active recommendation: #%d\n", snap.ActiveRecommendationID)
	}
	if expiry, ok := app.tokens.ExpiresAt(); ok {
		fmt.Fprintf(os.Stdout, "Token expires: %s\n", expiry.Format(time.RFC3339))
	}
	fmt.Fprintln(os.Stdout)

	app.printer.PrintTranscripts(transcripts)
	app.printer.PrintSummaries(summaries)
	return nil
}
