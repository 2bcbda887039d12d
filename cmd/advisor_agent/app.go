package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/advisor-agent/internal/advisory"
	"github.com/jonathan/advisor-agent/internal/browser"
	"github.com/jonathan/advisor-agent/internal/config"
	"github.com/jonathan/advisor-agent/internal/observability"
	"github.com/jonathan/advisor-agent/internal/session"
	"github.com/jonathan/advisor-agent/internal/token"
	"github.com/jonathan/advisor-agent/internal/workflow"
)

var (
	flagConfigPath  string
	flagBaseURL     string
	flagToken       string
	flagSessionFile string
	flagDatabaseURL string
	flagDownloadDir string
	flagTimeout     int
	flagVerbose     bool
)

func init() {
	// Config file flag (processed first)
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Advisory API base URL (defaults to ADVISOR_BASE_URL env var)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token for the advisory API (defaults to ADVISOR_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&flagSessionFile, "session-file", "", "Path to the session state file")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "db-url", "", "PostgreSQL connection URL for session state (optional, defaults to DATABASE_URL env var)")
	rootCmd.PersistentFlags().StringVarP(&flagDownloadDir, "download-dir", "d", "", "Directory for downloaded summary PDFs")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Per-request timeout in seconds for advisory calls")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig merges the config file, CLI flag overrides, environment
// variables, and built-in defaults, in that priority order (flags win).
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if flagConfigPath != "" {
		loadedCfg, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if flagVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", flagConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if cmd.Flags().Changed("token") {
		cfg.Token = flagToken
	}
	if cmd.Flags().Changed("session-file") {
		cfg.SessionFile = flagSessionFile
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = flagDatabaseURL
	}
	if cmd.Flags().Changed("download-dir") {
		cfg.DownloadDir = flagDownloadDir
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = flagTimeout
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flagVerbose
	}

	// Step 3: Environment fallbacks
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("ADVISOR_BASE_URL")
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("ADVISOR_TOKEN")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Step 4: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		SessionFile:    defaultSessionFile(),
		DownloadDir:    ".",
		TimeoutSeconds: 60,
	})

	// Step 5: Validate
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.BaseURL == "" {
		return config.Config{}, fmt.Errorf("ADVISOR_BASE_URL environment variable or --base-url flag is required")
	}
	if cfg.Token == "" {
		return config.Config{}, fmt.Errorf("ADVISOR_TOKEN environment variable or --token flag is required")
	}

	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".advisor_agent", "session.json")
	}
	return filepath.Join(home, ".advisor_agent", "session.json")
}

// app bundles the wired-up components a command needs.
type app struct {
	cfg     config.Config
	tokens  *token.Source
	client  *advisory.Client
	store   session.Store
	orch    *workflow.Orchestrator
	printer *observability.Printer
	closeFn func()
}

// Close releases the session store's resources, if any.
func (a *app) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// buildApp wires config, token, client, session store, and orchestrator for
// one command invocation.
func buildApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	tokens := token.NewSource(cfg.Token)
	if tokens.Expired(time.Now()) {
		_, _ = fmt.Fprintln(os.Stderr, "Warning: the advisory token has expired; requests will likely be rejected.")
	}

	client, err := advisory.NewClient(cfg.BaseURL, tokens,
		advisory.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, err
	}

	var store session.Store
	var closeFn func()
	if cfg.DatabaseURL != "" {
		pgStore, closePool, err := session.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = pgStore
		closeFn = closePool
	} else {
		fileStore, err := session.NewFileStore(cfg.SessionFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open session file: %w", err)
		}
		store = fileStore
	}

	adapter := browser.NewLocalAdapter(cfg.DownloadDir, os.Stdout)
	opts := []workflow.Option{
		workflow.WithBrowser(adapter),
		workflow.WithOnAuthError(tokens.Clear),
	}
	if cfg.Verbose {
		opts = append(opts, workflow.WithOnChange(func(snap workflow.Snapshot) {
			_, _ = fmt.Fprintf(os.Stderr, "[stage=%s busy=%s]\n", snap.Stage, snap.Busy)
		}))
	}

	orch, err := workflow.New(ctx, client, store, opts...)
	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return &app{
		cfg:     cfg,
		tokens:  tokens,
		client:  client,
		store:   store,
		orch:    orch,
		printer: observability.NewPrinter(os.Stdout),
		closeFn: closeFn,
	}, nil
}
