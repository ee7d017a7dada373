package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/pkg/metrics"
)

// ImageStore is the interface services use to keep binary assets in sync with
// their documents. Upload returns the public URL and the stable asset id the
// object can later be deleted by.
type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (url string, assetID string, err error)
	Delete(ctx context.Context, assetID string) error
}

// MinIOStore implements ImageStore on a MinIO bucket. Asset ids are the
// object keys inside the bucket.
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOStore creates a new image store client and ensures the bucket exists.
func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	s := &MinIOStore{client: mc, bucket: cfg.Bucket, baseURL: strings.TrimRight(base, "/")}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Upload stores the image under a fresh object key and returns its public URL
// together with the key.
func (s *MinIOStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, string, error) {
	key := "cars/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return "", "", fmt.Errorf("minio put %s: %w", key, err)
	}
	metrics.ImageUploads.WithLabelValues("ok").Inc()
	return s.baseURL + "/" + key, key, nil
}

// Delete removes the object identified by assetID.
func (s *MinIOStore) Delete(ctx context.Context, assetID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, assetID, minio.RemoveObjectOptions{}); err != nil {
		metrics.ImageDeletes.WithLabelValues("error").Inc()
		return fmt.Errorf("minio remove %s: %w", assetID, err)
	}
	metrics.ImageDeletes.WithLabelValues("ok").Inc()
	return nil
}

// Ping verifies the bucket is reachable; used by the readiness endpoint.
func (s *MinIOStore) Ping(ctx context.Context) error {
	exist, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exist {
		return fmt.Errorf("bucket %s missing", s.bucket)
	}
	return nil
}
