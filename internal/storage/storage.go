package storage

import (
	"context"
	"io"
)

type PutInput struct {
	// Category becomes the top-level folder of the key, e.g. "Product".
	Category    string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
