package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"spareparts-app/config"
)

// BlobStore abstracts where uploaded part images live. Records reference
// blobs by key only, so backends can be swapped without touching the data.
type BlobStore interface {
	// Put stores the blob under key, overwriting any existing blob.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
	// PublicPath returns the URL path browsers use to fetch the blob.
	PublicPath(key string) string
}

// NewFromConfig selects the configured backend.
func NewFromConfig(cfg *config.Config) (BlobStore, error) {
	switch cfg.UploadBackend {
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}

// NewKey generates a fresh blob key preserving the upload's file extension.
func NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}
