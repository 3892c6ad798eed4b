package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
)

// MinIOStore keeps files as objects in a MinIO (or S3 compatible) bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore connects and creates the bucket if it does not exist.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig, logger *zap.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("created uploads bucket", zap.String("bucket", cfg.Bucket))
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads r as object name.
func (s *MinIOStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

// Open streams object name.
func (s *MinIOStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !ValidName(name) {
		return nil, "", ErrInvalidName
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("get %s: %w", name, err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("stat %s: %w", name, err)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = ContentType(name)
	}
	return obj, contentType, nil
}

// Delete removes object name.
func (s *MinIOStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
