package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks the env vars resolveConfig falls back to.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADVISOR_BASE_URL", "")
	t.Setenv("ADVISOR_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
}

func TestResolveConfig(t *testing.T) {
	dummy := &cobra.Command{}

	t.Run("Missing base URL", func(t *testing.T) {
		clearEnv(t)
		_, err := resolveConfig(dummy)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base-url")
	})

	t.Run("Missing token", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ADVISOR_BASE_URL", "https://advising.example.edu")
		_, err := resolveConfig(dummy)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token")
	})

	t.Run("Environment fallback with defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ADVISOR_BASE_URL", "https://advising.example.edu")
		t.Setenv("ADVISOR_TOKEN", "tok-123")

		cfg, err := resolveConfig(dummy)
		require.NoError(t, err)
		assert.Equal(t, "https://advising.example.edu", cfg.BaseURL)
		assert.Equal(t, "tok-123", cfg.Token)
		assert.Equal(t, 60, cfg.TimeoutSeconds)
		assert.Equal(t, ".", cfg.DownloadDir)
		assert.NotEmpty(t, cfg.SessionFile)
	})

	t.Run("Config file values", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"base_url": "http://localhost:9000",
			"token": "file-token",
			"timeout_seconds": 15
		}`), 0o644))

		flagConfigPath = path
		defer func() { flagConfigPath = "" }()

		cfg, err := resolveConfig(dummy)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
		assert.Equal(t, "file-token", cfg.Token)
		assert.Equal(t, 15, cfg.TimeoutSeconds)
	})
}

func TestParseSummaryID(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int64
		wantErr bool
	}{
		{name: "Valid id", arg: "5", want: 5},
		{name: "Zero", arg: "0", wantErr: true},
		{name: "Negative", arg: "-3", wantErr: true},
		{name: "Not a number", arg: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSummaryID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
