package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"videotube/pkg/apperr"
	"videotube/pkg/config"
	"videotube/pkg/logger"
	"videotube/pkg/media"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Storage struct {
	client  s3iface.S3API
	bucket  string
	baseURL string
	prober media.DurationProber
	logger *logger.Logger
}

func NewS3Storage(cfg *config.Config, prober media.DurationProber, log *logger.Logger) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// S3-compatible endpoints (MinIO, localstack) need path-style addressing
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s3.New(sess)
	if _, err := client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
		if _, err := client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
			log.Warn("Bucket %s is not reachable and could not be created: %v", cfg.S3BucketName, err)
		}
	}

	return newS3Storage(client, cfg.S3BucketName, publicBaseURL(cfg), prober, log), nil
}

func newS3Storage(client s3iface.S3API, bucket, baseURL string, prober media.DurationProber, log *logger.Logger) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, baseURL: baseURL, prober: prober, logger: log}
}

func (s *S3Storage) Store(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	if localPath == "" {
		return nil, apperr.UploadFailed(nil, "No local file to upload")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, apperr.UploadFailed(err, "Failed to open local file")
	}
	defer file.Close()

	key := objectKey(kind, localPath)
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType(kind, localPath)),
	})
	if err != nil {
		s.logger.Error("Failed to upload %s to S3: %v", key, err)
		return nil, apperr.UploadFailed(err, fmt.Sprintf("Error while uploading %s", kind))
	}

	return &Asset{
		ID:       key,
		URL:      s.objectURL(key),
		Duration: probeDuration(s.prober, s.logger, kind, localPath),
	}, nil
}

func (s *S3Storage) Remove(ctx context.Context, assetID string, kind Kind) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return apperr.DeleteFailed(err, fmt.Sprintf("Failed to delete %s asset", kind))
	}
	return nil
}

func (s *S3Storage) objectURL(key string) string {
	return s.baseURL + "/" + key
}

// publicBaseURL mirrors how the bucket is addressed: path-style for custom
// endpoints, virtual-host style on AWS.
func publicBaseURL(cfg *config.Config) string {
	endpoint := cfg.AWSEndpoint
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if cfg.S3UseSSL == "false" {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s", protocol, endpoint, cfg.S3BucketName)
	}

	region := cfg.AWSRegion
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3BucketName, region)
}
