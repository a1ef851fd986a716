package comment

import (
	"context"

	"chirp/internal/core/comment"

	"github.com/gofrs/uuid"
)

// CommentRepository port for storing comments
type CommentRepository interface {
	// Create fails with ErrNotFound when the post is gone.
	Create(ctx context.Context, c *comment.Comment) error
	// FindByID loads the comment with its author.
	FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
}
