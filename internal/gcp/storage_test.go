package gcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LINKEDLENS_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("LINKEDLENS_TEST_VALUE", "fallback"))

	t.Setenv("LINKEDLENS_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("LINKEDLENS_TEST_VALUE", "fallback"))

	t.Setenv("LINKEDLENS_TEST_VALUE", "  ")
	assert.Equal(t, "fallback", GetEnv("LINKEDLENS_TEST_VALUE", "fallback"))

	assert.Equal(t, "fallback", GetEnv("LINKEDLENS_TEST_UNSET", "fallback"))
}

func TestClientOptions(t *testing.T) {
	assert.Empty(t, ClientOptions(""))
	assert.Len(t, ClientOptions("/secrets/sa.json"), 1)
}
