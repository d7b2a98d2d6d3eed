// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Lllllllleong/linkedlens/internal/gcp"
)

// Supported document backends.
const (
	BackendFirestore = "firestore"
	BackendGCS       = "gcs"
	BackendMongoDB   = "mongodb"
	BackendREST      = "rest"
	BackendMemory    = "memory"
)

// Config holds everything needed to start the service.
type Config struct {
	Backend  string
	Port     string
	LogLevel string

	// CredentialsFile replaces application default credentials for GCP backends.
	CredentialsFile string

	Firestore FirestoreConfig
	GCS       GCSConfig
	MongoDB   MongoDBConfig
	REST      RESTConfig
	Memory    MemoryConfig
}

type FirestoreConfig struct {
	ProjectID  string
	DatabaseID string
}

type GCSConfig struct {
	Bucket string
	Prefix string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type RESTConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type MemoryConfig struct {
	FixturesFile string
}

// Load reads an optional .env file, then the environment, applies overrides
// in order and validates the result.
func Load(overrides ...func(*Config)) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(gcp.GetEnv("API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("API_TIMEOUT is not a valid duration: %w", err)
	}

	return &Config{
		Backend:         strings.ToLower(gcp.GetEnv("DOCUMENT_BACKEND", BackendFirestore)),
		Port:            gcp.GetEnv("PORT", "8080"),
		LogLevel:        gcp.GetEnv("LOG_LEVEL", "info"),
		CredentialsFile: gcp.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Firestore: FirestoreConfig{
			ProjectID:  gcp.GetEnv("FIRESTORE_PROJECT_ID", ""),
			DatabaseID: gcp.GetEnv("FIRESTORE_DATABASE_ID", "(default)"),
		},
		GCS: GCSConfig{
			Bucket: gcp.GetEnv("GCS_BUCKET", ""),
			Prefix: gcp.GetEnv("GCS_PREFIX", ""),
		},
		MongoDB: MongoDBConfig{
			URI:      gcp.GetEnv("MONGODB_URI", ""),
			Database: gcp.GetEnv("MONGODB_DATABASE", ""),
		},
		REST: RESTConfig{
			BaseURL: gcp.GetEnv("API_BASE_URL", ""),
			Token:   gcp.GetEnv("API_TOKEN", ""),
			Timeout: timeout,
		},
		Memory: MemoryConfig{
			FixturesFile: gcp.GetEnv("MEMORY_FIXTURES_FILE", ""),
		},
	}, nil
}

// Validate checks that the settings required by the selected backend are present.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID environment variable must be set")
		}
		if c.Firestore.DatabaseID == "" {
			return fmt.Errorf("FIRESTORE_DATABASE_ID environment variable must not be empty")
		}
	case BackendGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET environment variable must be set")
		}
	case BackendMongoDB:
		if c.MongoDB.URI == "" || c.MongoDB.Database == "" {
			return fmt.Errorf("MONGODB_URI and MONGODB_DATABASE must be set")
		}
	case BackendREST:
		if c.REST.BaseURL == "" || c.REST.Token == "" {
			return fmt.Errorf("API_BASE_URL and API_TOKEN must be set")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported DOCUMENT_BACKEND %q", c.Backend)
	}
	return nil
}

// SetupLogging installs a JSON slog logger writing to w at the configured level as the default.
func (c *Config) SetupLogging(w io.Writer) {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(c.LogLevel)}))
	slog.SetDefault(logger)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
