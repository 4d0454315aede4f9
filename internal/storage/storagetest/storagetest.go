// Package storagetest holds the behaviour every storage.KeyValue backend must share.
package storagetest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/estate-be/internal/storage"
)

// Run exercises kv with keys under a unique namespace.
func Run(t *testing.T, kv storage.KeyValue) {
	t.Helper()
	ctx := context.Background()
	key := fmt.Sprintf("storagetest_%d", time.Now().UnixNano())

	_, err := kv.Get(ctx, key)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Set(ctx, key, []byte(`[{"id":"p1"}]`)))
	got, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(got))

	require.NoError(t, kv.Set(ctx, key, []byte(`[]`)))
	got, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, kv.Delete(ctx, key))
	_, err = kv.Get(ctx, key)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, kv.Delete(ctx, key), "deleting a missing key")
}

// RequireIntegration skips unless RUN_STORAGE_INTEGRATION=true and returns
// the value of envKey, loading .env files from parent directories first.
func RequireIntegration(t *testing.T, envKey string) string {
	t.Helper()
	if os.Getenv("RUN_STORAGE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORAGE_INTEGRATION=true to run this integration test")
	}
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env", "../../../../.env"} {
		_ = godotenv.Load(path)
	}
	val := strings.TrimSpace(os.Getenv(envKey))
	if val == "" {
		t.Fatalf("%s is required", envKey)
	}
	return val
}
