package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/config"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
)

// S3Storage stores ad images in a MinIO bucket. Object keys are uuid-based
// so original file names never collide.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(cfg *config.StorageConfig, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing MinIO storage", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", cfg.Bucket, err, errBucketExists)
		}
	}

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

// Upload stores the file under a fresh uuid key, keeping the original
// extension, and returns the object URL.
func (s *S3Storage) Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("Failed to upload object to MinIO",
			zap.String("bucket", s.bucket),
			zap.String("object_key", objectKey),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("Uploaded object to MinIO", zap.String("object_key", objectKey))
	return url, nil
}

// Delete removes an object by key.
func (s *S3Storage) Delete(ctx context.Context, objectKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Error("Failed to remove object from MinIO",
			zap.String("bucket", s.bucket),
			zap.String("object_key", objectKey),
			zap.Error(err))
		return fmt.Errorf("failed to remove %s from bucket %s: %w", objectKey, s.bucket, err)
	}
	return nil
}
