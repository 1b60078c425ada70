package storage

import (
	"context"
	"fmt"
	"strings"

	"videotube/pkg/apperr"
	"videotube/pkg/config"
	"videotube/pkg/logger"
	"videotube/pkg/media"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	prober  media.DurationProber
	logger  *logger.Logger
}

func NewMinioStorage(cfg *config.Config, prober media.DurationProber, log *logger.Logger) (*MinioStorage, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.AWSEndpoint, "https://"), "http://")
	if endpoint == "" {
		return nil, errors.New("AWS_ENDPOINT is required for the minio storage driver")
	}
	secure := cfg.S3UseSSL != "false"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		Secure: secure,
		Region: cfg.AWSRegion,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to create MinIO client")
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.S3BucketName)
	if err != nil {
		log.Warn("Failed to check bucket %s: %v", cfg.S3BucketName, err)
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.S3BucketName, minio.MakeBucketOptions{Region: cfg.AWSRegion}); err != nil {
			log.Warn("Failed to create bucket %s: %v", cfg.S3BucketName, err)
		}
	}
	log.Info("Connected to MinIO at %s, bucket=%s", endpoint, cfg.S3BucketName)

	scheme := "https"
	if !secure {
		scheme = "http"
	}
	return &MinioStorage{
		client:  client,
		bucket:  cfg.S3BucketName,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.S3BucketName),
		prober:  prober,
		logger:  log,
	}, nil
}

func (m *MinioStorage) Store(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	if localPath == "" {
		return nil, apperr.UploadFailed(nil, "No local file to upload")
	}

	key := objectKey(kind, localPath)
	_, err := m.client.FPutObject(ctx, m.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType(kind, localPath),
	})
	if err != nil {
		m.logger.Error("Failed to upload %s to MinIO: %v", key, err)
		return nil, apperr.UploadFailed(err, fmt.Sprintf("Error while uploading %s", kind))
	}

	return &Asset{
		ID:       key,
		URL:      m.baseURL + "/" + key,
		Duration: probeDuration(m.prober, m.logger, kind, localPath),
	}, nil
}

func (m *MinioStorage) Remove(ctx context.Context, assetID string, kind Kind) error {
	if err := m.client.RemoveObject(ctx, m.bucket, assetID, minio.RemoveObjectOptions{}); err != nil {
		return apperr.DeleteFailed(err, fmt.Sprintf("Failed to delete %s asset", kind))
	}
	return nil
}
