// Package storage wraps the S3-compatible blob store used for post images
// and profile pictures. The rest of the application treats it as an opaque
// service: bytes in, public URL out.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/dmc103/backend-pawstagram/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// BlobStore uploads binary objects and returns a publicly reachable URL.
type BlobStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, content []byte) (string, error)
}

// S3Store is a BlobStore backed by any S3-compatible service (AWS S3,
// Cloudflare R2, MinIO).
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3 client from static credentials and an optional
// custom endpoint. Returns nil when the blob store is not configured; callers
// must treat a nil store as "uploads unavailable".
func NewS3Store(cfg *config.Config) *S3Store {
	if !cfg.BlobConfigured() {
		return nil
	}

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.BlobAccessKey, cfg.BlobSecretKey, ""),
		Region:      cfg.BlobRegion,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BlobEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BlobEndpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.BlobPublicBaseURL
	if base == "" && cfg.BlobEndpoint != "" {
		base = strings.TrimSuffix(cfg.BlobEndpoint, "/") + "/" + cfg.BlobBucket
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.BlobBucket,
		publicBaseURL: strings.TrimSuffix(base, "/"),
	}
}

// Upload stores the object under a random key inside folder and returns its
// public URL. The original filename only contributes its extension.
func (s *S3Store) Upload(ctx context.Context, folder, filename, contentType string, content []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob upload failed: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}
