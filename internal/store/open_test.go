package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/linkedlens/internal/config"
)

func TestOpenMemoryWithFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"jobs":{"j1":{"title":"Engineer"}}}`), 0o600))

	s, err := Open(context.Background(), &config.Config{
		Backend: config.BackendMemory,
		Memory:  config.MemoryConfig{FixturesFile: path},
	})
	require.NoError(t, err)
	defer s.Close()

	doc, err := s.Get(context.Background(), "jobs", "j1")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", doc["title"])
}

func TestOpenMissingFixtures(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{
		Backend: config.BackendMemory,
		Memory:  config.MemoryConfig{FixturesFile: filepath.Join(t.TempDir(), "absent.json")},
	})
	assert.Error(t, err)
}

func TestOpenREST(t *testing.T) {
	s, err := Open(context.Background(), &config.Config{
		Backend: config.BackendREST,
		REST:    config.RESTConfig{BaseURL: "http://localhost:9", Token: "t"},
	})
	require.NoError(t, err)
	assert.IsType(t, &RESTStore{}, s)
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Backend: "cassandra"})
	assert.Error(t, err)
}
