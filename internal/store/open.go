package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lllllllleong/linkedlens/internal/config"
	"github.com/Lllllllleong/linkedlens/internal/gcp"
)

// Open builds the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	logCtx := slog.With("backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendFirestore:
		client, err := gcp.NewFirestoreClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.DatabaseID, gcp.ClientOptions(cfg.CredentialsFile)...)
		if err != nil {
			return nil, err
		}
		logCtx.Info("Firestore store initialized.", "projectId", cfg.Firestore.ProjectID, "databaseId", cfg.Firestore.DatabaseID)
		return NewFirestoreStore(client), nil

	case config.BackendGCS:
		client, err := gcp.NewStorageClient(ctx, gcp.ClientOptions(cfg.CredentialsFile)...)
		if err != nil {
			return nil, err
		}
		logCtx.Info("Cloud Storage store initialized.", "bucket", cfg.GCS.Bucket, "prefix", cfg.GCS.Prefix)
		return NewGCSStore(client, cfg.GCS.Bucket, cfg.GCS.Prefix), nil

	case config.BackendMongoDB:
		s, err := NewMongoStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			return nil, err
		}
		logCtx.Info("MongoDB store initialized.", "database", cfg.MongoDB.Database)
		return s, nil

	case config.BackendREST:
		logCtx.Info("REST store initialized.", "baseUrl", cfg.REST.BaseURL, "timeout", cfg.REST.Timeout.String())
		return NewRESTStore(cfg.REST.BaseURL, cfg.REST.Token, cfg.REST.Timeout), nil

	case config.BackendMemory:
		s := NewMemoryStore()
		if cfg.Memory.FixturesFile != "" {
			if err := s.LoadFixturesFile(cfg.Memory.FixturesFile); err != nil {
				return nil, err
			}
		}
		logCtx.Info("Memory store initialized.", "fixtures", cfg.Memory.FixturesFile)
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported document backend %q", cfg.Backend)
	}
}
