package post

import (
	"context"

	"chirp/internal/core/post"

	"github.com/gofrs/uuid"
)

// PostRepository port for writing posts and their like relation
type PostRepository interface {
	// CreateWithAttachments stores the post, its images and its hashtag links
	// in one transaction.
	CreateWithAttachments(ctx context.Context, p *post.Post, hashtagIDs []uuid.UUID) error
	CreateRetweet(ctx context.Context, p *post.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	FindRetweet(ctx context.Context, userID, originalID uuid.UUID) (*post.Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteOwned removes the post and what it owns when userID authored it.
	// It reports whether a row was removed.
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// AddLiker is idempotent and fails with ErrNotFound when the post is gone.
	AddLiker(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLiker(ctx context.Context, postID, userID uuid.UUID) error
}

// DTOs returned to the request layer

type AuthorDTO struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type LikerDTO struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname,omitempty"`
}

type ImageDTO struct {
	ID  string `json:"id"`
	Src string `json:"src"`
}

type HashtagDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CommentDTO struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	PostID    string     `json:"post_id"`
	UserID    string     `json:"user_id"`
	User      *AuthorDTO `json:"user"`
	CreatedAt string     `json:"created_at"`
}

type PostDTO struct {
	ID                 string       `json:"id"`
	Content            string       `json:"content"`
	UserID             string       `json:"user_id"`
	User               *AuthorDTO   `json:"user"`
	Images             []ImageDTO   `json:"images"`
	Hashtags           []HashtagDTO `json:"hashtags,omitempty"`
	Comments           []CommentDTO `json:"comments"`
	Likers             []LikerDTO   `json:"likers"`
	RetweetID          *string      `json:"retweet_id"`
	Retweet            *OriginalDTO `json:"retweet"`
	RetweetUnavailable bool         `json:"retweet_unavailable,omitempty"`
	CreatedAt          string       `json:"created_at"`
}

// OriginalDTO is the retweeted post nested inside a retweet. It has no
// retweet of its own, which caps the view at two levels.
type OriginalDTO struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	UserID    string       `json:"user_id"`
	User      *AuthorDTO   `json:"user"`
	Images    []ImageDTO   `json:"images"`
	Comments  []CommentDTO `json:"comments"`
	CreatedAt string       `json:"created_at"`
}

type LikeDTO struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}
