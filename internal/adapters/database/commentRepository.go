package database

import (
	"context"

	"chirp/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepositoryDatabase implements CommentRepository on gorm
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

// Create stores c, or fails with ErrNotFound when its post no longer exists
func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPost(tx, c.PostID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(c).Error
	})
	return translate("create comment", err)
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).
		Preload("User", publicUser).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, translate("find comment", err)
	}
	return &c, nil
}
