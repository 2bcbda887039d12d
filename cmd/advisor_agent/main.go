// Package main provides the entry point for the advisor agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "advisor_agent",
	Short: "Academic advising portal agent",
	Long:  "Advisor agent drives an academic advising account from the terminal: upload transcripts, generate course and scholarship recommendations, and manage saved advising summaries.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
