package database

import (
	"context"

	"chirp/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FeedRepositoryDatabase loads posts with the relations the views need
type FeedRepositoryDatabase struct {
	db *gorm.DB
}

func NewFeedRepositoryDatabase(db *gorm.DB) *FeedRepositoryDatabase {
	return &FeedRepositoryDatabase{db: db}
}

// withRelations preloads author, images, comments (newest first, with their
// authors), likers and, for retweets, the original with its own author,
// images and comments. The original's retweet is never followed.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", publicUser).
		Preload("Images").
		Preload("Comments", newestFirst).
		Preload("Comments.User", publicUser).
		Preload("Likers", publicUser).
		Preload("Retweet").
		Preload("Retweet.User", publicUser).
		Preload("Retweet.Images").
		Preload("Retweet.Comments", newestFirst).
		Preload("Retweet.Comments.User", publicUser)
}

func (repo *FeedRepositoryDatabase) FindDetailed(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := withRelations(repo.db.WithContext(ctx)).
		Preload("Hashtags").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, translate("find post", err)
	}
	return &p, nil
}

// Latest returns the newest posts; hashtags are not loaded for timelines.
func (repo *FeedRepositoryDatabase) Latest(ctx context.Context, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := withRelations(repo.db.WithContext(ctx)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, translate("load feed", err)
	}
	return posts, nil
}
