package main

import (
	"context"

	"github.com/spf13/cobra"
)

var scholarshipsCmd = &cobra.Command{
	Use:   "scholarships",
	Short: "Fetch scholarship matches for the student",
	Long:  "Fetch the current scholarship matches from the advisory service. The fetched list replaces any previously displayed matches.",
	RunE:  runScholarships,
}

func init() {
	rootCmd.AddCommand(scholarshipsCmd)
}

func runScholarships(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	scholarships, err := app.orch.FetchScholarships(ctx)
	if err != nil {
		return err
	}

	app.printer.PrintScholarships(scholarships)
	return nil
}
