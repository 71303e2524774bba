// internal/storage/minio.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ImageStore keeps listing photos in a MinIO bucket and serves them by
// public URL.
type ImageStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewImageStore connects to MinIO and makes sure the bucket exists.
func NewImageStore(ctx context.Context, cfg Config, logger *zap.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	logger.Info("image store ready",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)
	return &ImageStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Upload stores one photo under a fresh object key, keeping the original
// extension, and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("listings/%s%s", ulid.Make().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("image upload failed",
			zap.String("bucket", s.bucket),
			zap.String("key", objectKey),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Debug("image uploaded", zap.String("url", url), zap.Int("size", len(data)))
	return url, nil
}
