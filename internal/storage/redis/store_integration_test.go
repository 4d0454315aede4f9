package redis

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/storage/storagetest"
)

func TestRedisIntegration(t *testing.T) {
	addr := storagetest.RequireIntegration(t, "REDIS_ADDR")

	client, err := NewClient(context.Background(), Options{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	store := NewStore(client, "estate-test:", zap.NewNop())
	defer store.Close()

	storagetest.Run(t, store)
}
