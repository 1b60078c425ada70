package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"videotube/pkg/config"
	"videotube/pkg/logger"
	"videotube/pkg/media"

	"github.com/google/uuid"
)

type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

type Asset struct {
	ID       string  `json:"assetId"`
	URL      string  `json:"url"`
	Duration float64 `json:"durationSeconds,omitempty"`
}

// FileStorage uploads local files and removes stored assets.
// Store fails with apperr UploadFailed, Remove with apperr DeleteFailed.
type FileStorage interface {
	Store(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	Remove(ctx context.Context, assetID string, kind Kind) error
}

func New(cfg *config.Config, prober media.DurationProber, log *logger.Logger) (FileStorage, error) {
	switch cfg.StorageDriver {
	case "minio":
		return NewMinioStorage(cfg, prober, log)
	case "s3":
		return NewS3Storage(cfg, prober, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

func objectKey(kind Kind, localPath string) string {
	return fmt.Sprintf("%ss/%s%s", kind, uuid.New().String(), strings.ToLower(filepath.Ext(localPath)))
}

func contentType(kind Kind, localPath string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		return ct
	}
	if kind == KindVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}

// probeDuration never fails the upload; an unreadable duration is stored as 0.
func probeDuration(prober media.DurationProber, log *logger.Logger, kind Kind, localPath string) float64 {
	if kind != KindVideo || prober == nil {
		return 0
	}
	d, err := prober.Duration(localPath)
	if err != nil {
		log.Warn("Failed to read video duration for %s: %v", localPath, err)
		return 0
	}
	return d
}
