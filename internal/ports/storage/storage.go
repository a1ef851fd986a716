package storage

import (
	"context"
	"io"
)

// ImageStorage port for the upload collaborator. Save returns the reference
// clients hand back when creating a post.
type ImageStorage interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}
