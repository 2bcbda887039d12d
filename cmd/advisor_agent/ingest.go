package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/advisor-agent/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <transcript.pdf>",
	Short: "Upload a transcript and generate a course recommendation",
	Long:  "Upload a transcript file and generate a fresh course recommendation from it in one step. The recommendation becomes the active one for summary and scholarship commands.",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() { _ = file.Close() }()

	doc, err := app.orch.IngestDocument(ctx, filepath.Base(path), file)
	if err != nil {
		return err
	}

	snap := app.orch.Snapshot()
	fmt.Fprintf(os.Stdout, "Uploaded transcript %s (document %s)\n", doc.DisplayName, doc.ID)
	app.printer.PrintRecommendation(&types.Recommendation{
		ID:      snap.ActiveRecommendationID,
		Courses: snap.Courses,
	})

	return nil
}
