package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/calloway-legal/firmsite/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage 对象存储备份目标
type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

// NewMinioStorage 创建 MinIO 备份存储，桶不存在时自动创建
func NewMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	if cfg.BackupMinioEndpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	client, err := minio.New(cfg.BackupMinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BackupMinioAccess, cfg.BackupMinioSecret, ""),
		Secure: cfg.BackupMinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BackupMinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket '%s' exists: %w", cfg.BackupMinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BackupMinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.BackupMinioBucket, err)
		}
	}

	return &MinioStorage{
		client:     client,
		bucketName: cfg.BackupMinioBucket,
	}, nil
}

// Save 上传对象
func (s *MinioStorage) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucketName, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object '%s': %w", name, err)
	}
	return nil
}

// Health 检查桶可达
func (s *MinioStorage) Health(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("minio unavailable: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket '%s' does not exist", s.bucketName)
	}
	return nil
}

// Name 返回存储名称
func (s *MinioStorage) Name() string {
	return "minio"
}
