package feed

import (
	"context"

	"chirp/internal/core/post"
	postPort "chirp/internal/ports/post"

	"github.com/gofrs/uuid"
)

// FeedRepository read-only port used by the feed assembler
type FeedRepository interface {
	// FindDetailed loads one post with every relation a single-post view needs.
	FindDetailed(ctx context.Context, id uuid.UUID) (*post.Post, error)
	// Latest loads the newest posts with the relations a timeline needs.
	Latest(ctx context.Context, limit int) ([]*post.Post, error)
}

// FeedCache keeps the assembled newest page between mutations.
// Pages are stored per generation and Invalidate starts a new generation,
// so a page built before a mutation is never served after it.
type FeedCache interface {
	// Get returns the current generation and the page cached for it, if any.
	Get(ctx context.Context) (posts []*postPort.PostDTO, gen int64, ok bool, err error)
	// Set stores posts under gen, the generation Get reported before the
	// page was loaded from the store.
	Set(ctx context.Context, gen int64, posts []*postPort.PostDTO) error
	Invalidate(ctx context.Context) error
}
