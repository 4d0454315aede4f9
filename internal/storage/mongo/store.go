package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/estate-be/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
	collectionName = "kv_entries"
)

var _ storage.KeyValue = (*Store)(nil)

type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Store keeps one document per key in the kv_entries collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStore connects, pings the primary and binds the collection.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
	}, nil
}

// Get returns storage.ErrNotFound when no document exists for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo get %q: %w", key, err)
	}
	return []byte(e.Value), nil
}

// Set replaces the document for key, inserting it when missing.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	doc := entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %q: %w", key, err)
	}
	return nil
}

// Delete removes the document for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %q: %w", key, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
