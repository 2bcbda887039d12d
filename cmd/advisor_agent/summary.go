package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/advisor-agent/internal/advisory"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate, save, list, download, and delete advising summaries",
}

var summaryGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate advising summary text for the active recommendation",
	RunE:  runSummaryGenerate,
}

var summarySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save an advising summary as a PDF on the account",
	Long:  "Generate summary text for the active recommendation (unless one was already generated this run) and save it as a PDF on the account.",
	RunE:  runSummarySave,
}

var summaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved summaries",
	RunE:  runSummaryList,
}

var summaryDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a saved summary PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummaryDownload,
}

var summaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummaryDelete,
}

var saveIncludeScholarships bool

func init() {
	summarySaveCmd.Flags().BoolVar(&saveIncludeScholarships, "include-scholarships", false, "Include scholarship matches in the saved summary")

	summaryCmd.AddCommand(summaryGenerateCmd)
	summaryCmd.AddCommand(summarySaveCmd)
	summaryCmd.AddCommand(summaryListCmd)
	summaryCmd.AddCommand(summaryDownloadCmd)
	summaryCmd.AddCommand(summaryDeleteCmd)
	rootCmd.AddCommand(summaryCmd)
}

func parseSummaryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid summary id %q: expected a positive integer", arg)
	}
	return id, nil
}

func runSummaryGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	text, err := app.orch.GenerateSummary(ctx)
	if err != nil {
		return err
	}

	app.printer.PrintSummaryText(text)
	return nil
}

func runSummarySave(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	// Summary text lives only in memory, so a fresh process generates it
	// before saving.
	if app.orch.Snapshot().SummaryText == "" && app.orch.Snapshot().ActiveRecommendationID != 0 {
		if _, err := app.orch.GenerateSummary(ctx); err != nil {
			return err
		}
	}

	ref, err := app.orch.SaveSummary(ctx, saveIncludeScholarships)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Saved summary #%d\n", ref.ID)
	if ref.PDFPath != "" {
		fmt.Fprintf(os.Stdout, "Server path: %s\n", ref.PDFPath)
	}
	return nil
}

func runSummaryList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	summaries, err := app.orch.ListSummaries(ctx)
	if err != nil {
		return err
	}

	app.printer.PrintSummaries(summaries)
	return nil
}

func runSummaryDownload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := parseSummaryID(args[0])
	if err != nil {
		return err
	}

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	path, err := app.orch.DownloadSummary(ctx, id)
	if err != nil {
		var notFound *advisory.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("summary %d does not exist on the account", id)
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Downloaded summary %d to %s\n", id, path)
	return nil
}

func runSummaryDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := parseSummaryID(args[0])
	if err != nil {
		return err
	}

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.orch.DeleteSummary(ctx, id); err != nil {
		var notFound *advisory.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("summary %d does not exist on the account", id)
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Deleted summary %d\n", id)
	return nil
}
