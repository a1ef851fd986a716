package database

import (
	"context"

	"chirp/internal/core/comment"
	"chirp/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on gorm
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase constructor of PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) CreateWithAttachments(ctx context.Context, p *post.Post, hashtagIDs []uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}

		if len(p.Images) > 0 {
			for i := range p.Images {
				p.Images[i].PostID = p.ID
			}
			if err := tx.Create(&p.Images).Error; err != nil {
				return err
			}
		}

		if len(hashtagIDs) > 0 {
			links := make([]post.PostHashtag, 0, len(hashtagIDs))
			for _, hid := range hashtagIDs {
				links = append(links, post.PostHashtag{PostID: p.ID, HashtagID: hid})
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate("create post", err)
}

// CreateRetweet inserts a retweet post. A second retweet of the same original
// by the same user violates uniq_user_retweet and comes back as ErrConflict.
func (repo *PostRepositoryDatabase) CreateRetweet(ctx context.Context, p *post.Post) error {
	err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	return translate("create retweet", err)
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate("find post", err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindRetweet(ctx context.Context, userID, originalID uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND retweet_id = ?", userID, originalID).
		First(&p).Error; err != nil {
		return nil, translate("find retweet", err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate("count post", err)
	}
	return count > 0, nil
}

// DeleteOwned removes the post with its images, hashtag links, likes and
// comments. Retweets of the post are left in place.
func (repo *PostRepositoryDatabase) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	deleted := false
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true

		owned := []any{&post.Image{}, &post.PostHashtag{}, &post.Like{}, &comment.Comment{}}
		for _, model := range owned {
			if err := tx.Where("post_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, translate("delete post", err)
	}
	return deleted, nil
}

// AddLiker records the like unless it exists. It fails with ErrNotFound when
// the post is gone by the time the row would be written.
func (repo *PostRepositoryDatabase) AddLiker(ctx context.Context, postID, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPost(tx, postID); err != nil {
			return err
		}
		like := &post.Like{PostID: postID, UserID: userID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
	})
	return translate("add like", err)
}

func (repo *PostRepositoryDatabase) RemoveLiker(ctx context.Context, postID, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&post.Like{}).Error
	return translate("remove like", err)
}
