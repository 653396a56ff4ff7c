// Package storage archives generated documents.
package storage

import (
	"context"

	"github.com/sangkips/autoshop-api/internal/config"
)

// DocumentStore persists a document under key and returns where it landed.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// New picks S3 when a bucket is configured, local disk otherwise.
func New(ctx context.Context, cfg *config.StorageConfig) (DocumentStore, error) {
	if cfg.S3Bucket != "" {
		return NewS3Store(ctx, cfg)
	}
	return NewLocalStore(cfg.Path)
}
