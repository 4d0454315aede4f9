package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/estate-be/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dialTimeout = 5 * time.Second

var _ storage.KeyValue = (*Store)(nil)

// Options configures the Redis connection and key namespace.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store keeps each collection as a single Redis string without expiry.
type Store struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewClient dials Redis and verifies the connection with PING.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(dialCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// NewStore wraps an established client.
func NewStore(client *redis.Client, prefix string, logger *zap.Logger) *Store {
	return &Store{client: client, prefix: prefix, logger: logger}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get returns storage.ErrNotFound when the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		s.logger.Error("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

// Set writes value without a TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		s.logger.Error("redis set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		s.logger.Error("redis del failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
