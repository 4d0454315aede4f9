package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/ai"
	"github.com/hongminglow/estate-be/internal/auth"
	"github.com/hongminglow/estate-be/internal/config"
	"github.com/hongminglow/estate-be/internal/events"
	"github.com/hongminglow/estate-be/internal/geo"
	"github.com/hongminglow/estate-be/internal/logger"
	"github.com/hongminglow/estate-be/internal/media"
	"github.com/hongminglow/estate-be/internal/server"
	"github.com/hongminglow/estate-be/internal/storage"
	"github.com/hongminglow/estate-be/internal/storage/memory"
	"github.com/hongminglow/estate-be/internal/storage/mongo"
	"github.com/hongminglow/estate-be/internal/storage/postgres"
	"github.com/hongminglow/estate-be/internal/storage/redis"
	"github.com/hongminglow/estate-be/internal/store"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)
	if envErr != nil {
		zl.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	kv, closeKV, err := openBackend(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("init storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeKV()

	st, err := store.New(ctx, kv, zl)
	if err != nil {
		zl.Fatal("load collections", zap.Error(err))
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATSURL, zl)
		if err != nil {
			zl.Fatal("init event publisher", zap.Error(err))
		}
		defer nats.Close()
		publisher = nats
	}

	var uploader media.Uploader
	if cfg.MediaEnabled() {
		minio, err := media.NewMinioUploader(ctx, media.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, zl)
		if err != nil {
			zl.Fatal("init media storage", zap.Error(err))
		}
		uploader = minio
	}

	srv := server.New(cfg, server.Deps{
		Store:     st,
		Session:   store.NewSession(kv, zl),
		Tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Assistant: ai.NewService(newAIClient(ctx, cfg, zl), zl),
		Geocoder:  geo.NewClient(cfg.NominatimURL, cfg.GeoUserAgent, nil),
		Uploader:  uploader,
		Events:    events.NewLogged(publisher, zl),
		Logger:    zl,
	})

	go func() {
		zl.Info("estate backend listening",
			zap.String("addr", cfg.HTTPAddress()),
			zap.String("storage", cfg.StorageBackend),
			zap.Bool("uploads", uploader != nil),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zl.Error("graceful shutdown error", zap.Error(err))
	}
}

func openBackend(ctx context.Context, cfg config.Config, zl *zap.Logger) (storage.KeyValue, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pg, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		rs := redis.NewStore(client, cfg.RedisKeyPrefix, zl)
		return rs, func() { _ = rs.Close() }, nil
	case config.BackendMongo:
		ms, err := mongo.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return ms, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ms.Close(closeCtx)
		}, nil
	case config.BackendMemory:
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newAIClient(ctx context.Context, cfg config.Config, zl *zap.Logger) *ai.Client {
	key, ok := ai.ResolveAPIKey(cfg.GeminiAPIKey, cfg.APIKey)
	if !ok {
		zl.Warn("no Gemini API key configured; AI features return placeholder text")
		return ai.NewClient(nil)
	}
	gen, err := ai.NewGeminiGenerator(ctx, key, cfg.GeminiModel)
	if err != nil {
		zl.Error("init Gemini client; AI features disabled", zap.Error(err))
		return ai.NewClient(nil)
	}
	return ai.NewClient(gen)
}
