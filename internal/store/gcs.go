package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/Lllllllleong/linkedlens/internal/models"
)

// GCSStore reads documents stored as JSON objects in a Cloud Storage bucket,
// one object per document at {prefix}{collection}/{id}.json.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStore(client *storage.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *GCSStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validate(collection, id); err != nil {
		return nil, err
	}
	objectName := s.objectName(collection, id)

	reader, err := s.client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, notFound(collection, id)
		}
		return nil, upstream(collection, id, fmt.Errorf("failed to open gs://%s/%s: %w", s.bucket, objectName, err))
	}
	defer reader.Close()

	var fields map[string]any
	dec := json.NewDecoder(reader)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, upstream(collection, id, fmt.Errorf("failed to decode gs://%s/%s: %w", s.bucket, objectName, err))
	}
	return models.NewDocument(id, fields), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) objectName(collection, id string) string {
	return fmt.Sprintf("%s%s/%s.json", s.prefix, collection, id)
}
