package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Full config", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"base_url": "https://advising.example.edu/api",
			"token": "tok-123",
			"session_file": "/tmp/session.json",
			"download_dir": "/tmp/downloads",
			"timeout_seconds": 30,
			"verbose": true
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://advising.example.edu/api", cfg.BaseURL)
		assert.Equal(t, "tok-123", cfg.Token)
		assert.Equal(t, "/tmp/session.json", cfg.SessionFile)
		assert.Equal(t, "/tmp/downloads", cfg.DownloadDir)
		assert.Equal(t, 30, cfg.TimeoutSeconds)
		assert.True(t, cfg.Verbose)
	})

	t.Run("Empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		path := writeConfigFile(t, "{not json")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Valid config",
			cfg:  Config{BaseURL: "https://advising.example.edu", TimeoutSeconds: 30},
		},
		{
			name: "Empty config is valid",
			cfg:  Config{},
		},
		{
			name:    "Base URL without scheme",
			cfg:     Config{BaseURL: "advising.example.edu"},
			wantErr: true,
		},
		{
			name:    "Negative timeout",
			cfg:     Config{TimeoutSeconds: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		BaseURL:        "https://advising.example.edu",
		SessionFile:    "/home/user/.advisor/session.json",
		DownloadDir:    ".",
		TimeoutSeconds: 60,
	}

	t.Run("Empty fields filled from defaults", func(t *testing.T) {
		cfg := Config{Token: "tok-123"}
		merged := cfg.MergeWithDefaults(defaults)

		assert.Equal(t, "tok-123", merged.Token)
		assert.Equal(t, defaults.BaseURL, merged.BaseURL)
		assert.Equal(t, defaults.SessionFile, merged.SessionFile)
		assert.Equal(t, defaults.DownloadDir, merged.DownloadDir)
		assert.Equal(t, 60, merged.TimeoutSeconds)
	})

	t.Run("Set fields win over defaults", func(t *testing.T) {
		cfg := Config{
			BaseURL:        "http://localhost:8080",
			DatabaseURL:    "postgres://localhost/advisor",
			TimeoutSeconds: 10,
		}
		merged := cfg.MergeWithDefaults(defaults)

		assert.Equal(t, "http://localhost:8080", merged.BaseURL)
		assert.Equal(t, "postgres://localhost/advisor", merged.DatabaseURL)
		assert.Equal(t, 10, merged.TimeoutSeconds)
	})
}
