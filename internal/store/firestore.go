package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Lllllllleong/linkedlens/internal/models"
)

// FirestoreStore reads documents from Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validate(collection, id); err != nil {
		return nil, err
	}
	// A slash would address a subcollection, never a document of this collection.
	if strings.Contains(id, "/") {
		return nil, notFound(collection, id)
	}
	col := s.client.Collection(collection)
	if col == nil {
		return nil, notFound(collection, id)
	}

	snap, err := col.Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError(collection, id, err)
	}
	if !snap.Exists() {
		return nil, notFound(collection, id)
	}
	return models.NewDocument(snap.Ref.ID, normalizeFirestoreData(snap.Data())), nil
}

// firestoreError maps a failed Get to the store error kinds. Firestore answers
// reserved IDs such as "__x__" with InvalidArgument.
func firestoreError(collection, id string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return notFound(collection, id)
	case codes.InvalidArgument:
		return fmt.Errorf("invalid document ID %q in %s: %v: %w", id, collection, err, ErrInvalidArgument)
	default:
		return upstream(collection, id, err)
	}
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// normalizeFirestoreData replaces document references with their IDs so that
// reference fields (such as a post's author) serialize as plain strings.
func normalizeFirestoreData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = normalizeFirestoreValue(v)
	}
	return out
}

func normalizeFirestoreValue(v any) any {
	switch val := v.(type) {
	case *firestore.DocumentRef:
		if val == nil {
			return nil
		}
		return val.ID
	case map[string]any:
		return normalizeFirestoreData(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeFirestoreValue(item)
		}
		return out
	default:
		return v
	}
}
