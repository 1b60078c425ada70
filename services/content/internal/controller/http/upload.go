package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"videotube/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize caps a single multipart request.
const maxUploadSize = 512 << 20

var allowedExtensions = map[string][]string{
	"videoFile": {".mp4", ".mov", ".mkv", ".webm", ".avi"},
	"thumbnail": {".jpg", ".jpeg", ".png", ".webp"},
}

// saveUpload stores the multipart file under field into dir and returns its
// path. It returns "" when the field is absent. Callers remove the file once
// the use case has handed it to storage.
func saveUpload(c *gin.Context, field, dir string) (string, error) {
	if c.Request.MultipartForm == nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	}

	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apperr.Validation("Failed to read %s", field)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if allowed, ok := allowedExtensions[field]; ok && !slices.Contains(allowed, ext) {
		return "", apperr.Validation("Unsupported %s format %q", field, ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Internal(err, "Failed to prepare upload directory")
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", apperr.Internal(err, "Failed to save uploaded file")
	}
	return path, nil
}

func removeTemp(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
