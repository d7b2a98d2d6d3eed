package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCSObjectName(t *testing.T) {
	s := &GCSStore{bucket: "docs", prefix: "export/"}
	assert.Equal(t, "export/posts/p1.json", s.objectName("posts", "p1"))

	s.prefix = ""
	assert.Equal(t, "users/u1.json", s.objectName("users", "u1"))
}

// TestGCSStoreEmulator runs against a Cloud Storage emulator when
// STORAGE_EMULATOR_HOST is set.
func TestGCSStoreEmulator(t *testing.T) {
	if os.Getenv("STORAGE_EMULATOR_HOST") == "" {
		t.Skip("STORAGE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	require.NoError(t, err)

	bucket := client.Bucket("linkedlens-test")
	_ = bucket.Create(ctx, "linkedlens-test", nil)
	w := bucket.Object("jobs/j1.json").NewWriter(ctx)
	_, err = w.Write([]byte(`{"title":"Engineer"}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	s := NewGCSStore(client, "linkedlens-test", "")
	defer s.Close()

	doc, err := s.Get(ctx, "jobs", "j1")
	require.NoError(t, err)
	assert.Equal(t, "j1", doc.ID())
	assert.Equal(t, "Engineer", doc["title"])

	_, err = s.Get(ctx, "jobs", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	w = bucket.Object("jobs/broken.json").NewWriter(ctx)
	_, err = w.Write([]byte(strings.Repeat("{", 3)))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	_, err = s.Get(ctx, "jobs", "broken")
	assert.ErrorIs(t, err, ErrUpstream)
}
