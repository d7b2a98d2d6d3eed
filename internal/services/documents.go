package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lllllllleong/linkedlens/internal/models"
	"github.com/Lllllllleong/linkedlens/internal/store"
)

// DocumentService holds the dependencies for document lookups.
type DocumentService struct {
	store store.Store
}

// NewDocumentService creates a DocumentService reading from s.
func NewDocumentService(s store.Store) *DocumentService {
	return &DocumentService{store: s}
}

// Fetch returns collection/id with its "id" field set. Store errors are
// returned wrapped so errors.Is still matches the store error kinds.
func (svc *DocumentService) Fetch(ctx context.Context, collection, id string) (models.Document, error) {
	logCtx := Logger(ctx).With("collection", collection, "documentId", id)

	doc, err := svc.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logCtx.Warn("Document not found.")
		} else {
			logCtx.Error("Failed to fetch document", "error", err)
		}
		return nil, err
	}
	logCtx.Debug("Fetched document.")
	return doc, nil
}

// GetJob fetches a job document.
func (svc *DocumentService) GetJob(ctx context.Context, id string) (models.Document, error) {
	return svc.Fetch(ctx, models.JobsCollection, id)
}

// GetEnrichedPost fetches a post and replaces its author ID with the
// author's display name.
//
// A post without an author, or whose author document does not exist, gets
// models.UnknownAuthor. Any other failure of either lookup fails the call.
func (svc *DocumentService) GetEnrichedPost(ctx context.Context, id string) (models.Document, error) {
	post, err := svc.Fetch(ctx, models.PostsCollection, id)
	if err != nil {
		return nil, err
	}

	authorName, err := svc.resolveAuthor(ctx, post.String("author"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author of post %s: %w", id, err)
	}

	enriched := post.Clone()
	enriched["author"] = authorName
	return enriched, nil
}

func (svc *DocumentService) resolveAuthor(ctx context.Context, authorID string) (string, error) {
	if authorID == "" {
		return models.UnknownAuthor, nil
	}

	userDoc, err := svc.Fetch(ctx, models.UsersCollection, authorID)
	if errors.Is(err, store.ErrNotFound) {
		Logger(ctx).Warn("Post author does not exist.", "authorId", authorID)
		return models.UnknownAuthor, nil
	}
	if err != nil {
		return "", err
	}
	return models.UserFromDocument(userDoc).DisplayName(), nil
}

type loggerKey struct{}

// WithLogger returns a context carrying l for request-scoped logging.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the request logger stored in ctx, or the default logger.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
