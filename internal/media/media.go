// Package media stores listing photos in S3-compatible object storage.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MaxImageBytes caps a single upload.
const MaxImageBytes = 10 << 20

var (
	ErrNotImage = errors.New("only image files can be uploaded")
	ErrTooLarge = errors.New("image exceeds the 10 MiB limit")
	ErrEmpty    = errors.New("image is empty")
)

// Uploader persists an image and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

// Validate checks an upload before it is sent anywhere.
func Validate(contentType string, size int) error {
	switch {
	case !strings.HasPrefix(strings.ToLower(contentType), "image/"):
		return ErrNotImage
	case size == 0:
		return ErrEmpty
	case size > MaxImageBytes:
		return ErrTooLarge
	}
	return nil
}

// ObjectKey names the stored object, keeping the original extension.
func ObjectKey(fileName string) string {
	return fmt.Sprintf("images/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type MinioUploader struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewMinioUploader connects and makes sure the bucket exists.
func NewMinioUploader(ctx context.Context, cfg MinioConfig, logger *zap.Logger) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, errors.Join(err, existsErr))
		}
	}
	logger.Info("media bucket ready", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))

	return &MinioUploader{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if err := Validate(contentType, len(data)); err != nil {
		return "", err
	}

	key := ObjectKey(fileName)
	info, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to bucket %s: %w", key, u.bucket, err)
	}

	u.logger.Info("image uploaded",
		zap.String("key", info.Key),
		zap.String("original_name", fileName),
		zap.Int64("size", info.Size),
	)
	return fmt.Sprintf("%s/%s/%s", u.client.EndpointURL().String(), u.bucket, key), nil
}
