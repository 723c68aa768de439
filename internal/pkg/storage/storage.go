// Package storage archives generated files (ledger exports) to object
// storage or a local directory.
package storage

import (
	"context"
	"io"
)

// Storage is the archive backend.
type Storage interface {
	// Put stores the object at key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Exists reports whether key is already stored.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the location of key for logs and operators.
	GetURL(key string) string
}

// Config selects and configures a backend.
type Config struct {
	LocalDir    string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// New returns the S3 backend when a bucket is configured and the local
// directory backend otherwise.
func New(ctx context.Context, cfg Config) (Storage, error) {
	if cfg.S3Bucket != "" {
		return NewS3Storage(ctx, cfg)
	}
	return NewLocalStorage(cfg.LocalDir)
}
