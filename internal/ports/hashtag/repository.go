package hashtag

import (
	"context"

	"chirp/internal/core/hashtag"
)

// HashtagRepository port for the hashtags table
type HashtagRepository interface {
	FindByName(ctx context.Context, name string) (*hashtag.Hashtag, error)
	// CreateIfAbsent inserts h unless a tag with the same name exists and
	// reports whether this call inserted the row.
	CreateIfAbsent(ctx context.Context, h *hashtag.Hashtag) (bool, error)
}
