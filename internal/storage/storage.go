package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var ErrNotFound = errors.New("file not found")

// Storage is a key to bytes blob store. Keys are slash separated, e.g. "avatars/avatar_x.png".
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get returns ErrNotFound when the key does not exist
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is a no-op for missing keys
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // local root directory
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // R2 or any S3 compatible endpoint
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
