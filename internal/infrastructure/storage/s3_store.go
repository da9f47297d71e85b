package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	infraconfig "github.com/festivo/backend/internal/infrastructure/config"
)

var _ ArtifactStore = (*S3ArtifactStore)(nil)

// S3ArtifactStore implements ArtifactStore using AWS S3 SDK v2. It works
// with any S3-compatible backend (AWS S3, MinIO, etc.) via a custom endpoint.
type S3ArtifactStore struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3ArtifactStore creates a store from storage configuration. Credentials
// come from the default AWS chain (env, shared config, instance role).
func NewS3ArtifactStore(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3ArtifactStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ArtifactStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger.Named("artifact-store"),
	}, nil
}

// Put uploads an artifact under <prefix>/<tenantSlug>/<filename>
func (s *S3ArtifactStore) Put(ctx context.Context, tenantSlug, filename string, data []byte, contentType string) (string, error) {
	if filename == "" {
		return "", errors.New("artifact filename is required")
	}

	key := tenantSlug + "/" + filename
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	s.logger.Debug("archived export artifact",
		zap.String("key", key),
		zap.Int("size", len(data)))
	return key, nil
}
