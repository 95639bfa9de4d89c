package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"inmohub/logging"
)

// DiskStore implements contracts.ImageStorage on the local filesystem.
// Uploaded blobs get a generated name and are served back under the
// configured public base URL, so the returned URL is durable for as long as
// the media directory lives.
type DiskStore struct {
	dir     string
	baseURL string
	logger  *logging.Logger
}

// NewDiskStore creates the media directory if needed and returns a store.
func NewDiskStore(dir, baseURL string, logger *logging.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Upload stores the file and returns its durable public URL.
func (s *DiskStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to store empty file %q", filename)
	}

	name := uuid.NewString() + sanitizeExt(filename)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store %q: %w", filename, err)
	}

	url := s.baseURL + "/" + name
	s.logger.Storage("Stored image", "filename", filename, "url", url, "bytes", len(data))
	return url, nil
}

// Remove deletes a blob by its public URL. URLs outside the store's base
// (external image links) are ignored.
func (s *DiskStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil
	}

	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove %s: %w", url, err)
	}
	s.logger.Storage("Removed image", "url", url)
	return nil
}

// Dir returns the media directory for static file serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// sanitizeExt keeps only a plausible file extension from the original name.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif":
		return ext
	default:
		return ""
	}
}
