package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/moa-team/moa-backend/pkg/config"
)

// MinIOClient wraps MinIO operations for audio objects
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL when MinIO sits behind a reverse proxy
}

// NewMinIOClient creates a new MinIO client and ensures the audio bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadAudio stores one audio answer and returns its object key. Keys are
// namespaced by user and randomized so repeat submissions never collide.
func (m *MinIOClient) UploadAudio(ctx context.Context, userID string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("audio/%s/%s%s", userID, uuid.NewString(), ExtensionForContentType(contentType))

	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}

	return objectName, nil
}

// PresignedURL returns a time-limited download URL for a stored object.
// External services fetch audio through this, never through raw keys.
func (m *MinIOClient) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	urlStr := url.String()
	if m.publicURL != "" {
		// Swap the internal endpoint for the public one so external
		// services can reach the object through the proxy.
		if idx := strings.Index(urlStr, "/"+m.bucket+"/"); idx >= 0 {
			urlStr = strings.TrimRight(m.publicURL, "/") + urlStr[idx:]
		}
	}
	return urlStr, nil
}

// DeleteObject removes a stored object
func (m *MinIOClient) DeleteObject(ctx context.Context, objectName string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
