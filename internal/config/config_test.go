package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOCUMENT_BACKEND", "PORT", "LOG_LEVEL", "GOOGLE_APPLICATION_CREDENTIALS",
		"FIRESTORE_PROJECT_ID", "FIRESTORE_DATABASE_ID",
		"GCS_BUCKET", "GCS_PREFIX",
		"MONGODB_URI", "MONGODB_DATABASE",
		"API_BASE_URL", "API_TOKEN", "API_TIMEOUT",
		"MEMORY_FIXTURES_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFirestoreDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIRESTORE_PROJECT_ID", "linkedlens-test")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.Backend)
	assert.Equal(t, "linkedlens-test", cfg.Firestore.ProjectID)
	assert.Equal(t, "(default)", cfg.Firestore.DatabaseID)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.REST.Timeout)
	assert.Equal(t, "/secrets/sa.json", cfg.CredentialsFile)
}

func TestLoadTreatsEmptyAsUnset(t *testing.T) {
	tests := []struct {
		key  string
		field func(*Config) any
		def  any
	}{
		{"DOCUMENT_BACKEND", func(c *Config) any { return c.Backend }, BackendFirestore},
		{"PORT", func(c *Config) any { return c.Port }, "8080"},
		{"LOG_LEVEL", func(c *Config) any { return c.LogLevel }, "info"},
		{"FIRESTORE_DATABASE_ID", func(c *Config) any { return c.Firestore.DatabaseID }, "(default)"},
		{"API_TIMEOUT", func(c *Config) any { return c.REST.Timeout }, 10 * time.Second},
	}
	for _, tt := range tests {
		for _, empty := range []string{"", "   "} {
			t.Run(tt.key+"="+empty, func(t *testing.T) {
				clearEnv(t)
				t.Setenv("FIRESTORE_PROJECT_ID", "linkedlens-test")
				t.Setenv(tt.key, empty)

				cfg, err := Load()
				require.NoError(t, err)
				assert.Equal(t, tt.def, tt.field(cfg))
			})
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(func(c *Config) { c.Backend = BackendMemory })
	require.NoError(t, err, "overrides apply before validation")
	assert.Equal(t, BackendMemory, cfg.Backend)
}

func TestLoadFailsFastOnMissingSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"firestore project", map[string]string{"DOCUMENT_BACKEND": "firestore"}, "FIRESTORE_PROJECT_ID"},
		{"gcs bucket", map[string]string{"DOCUMENT_BACKEND": "gcs"}, "GCS_BUCKET"},
		{"mongodb uri", map[string]string{"DOCUMENT_BACKEND": "mongodb", "MONGODB_DATABASE": "app"}, "MONGODB_URI"},
		{"rest token", map[string]string{"DOCUMENT_BACKEND": "rest", "API_BASE_URL": "http://api"}, "API_TOKEN"},
		{"unknown backend", map[string]string{"DOCUMENT_BACKEND": "cassandra"}, "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCUMENT_BACKEND", "memory")
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_TIMEOUT")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
