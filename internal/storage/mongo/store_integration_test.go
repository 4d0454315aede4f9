package mongo

import (
	"context"
	"testing"

	"github.com/hongminglow/estate-be/internal/storage/storagetest"
)

func TestMongoIntegration(t *testing.T) {
	uri := storagetest.RequireIntegration(t, "MONGO_URI")

	ctx := context.Background()
	store, err := NewStore(ctx, uri, "estate_test")
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close(ctx)

	storagetest.Run(t, store)
}
