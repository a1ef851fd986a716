package database

import (
	"errors"
	"fmt"

	"chirp/internal/core/comment"
	"chirp/internal/core/errs"
	"chirp/internal/core/hashtag"
	"chirp/internal/core/post"
	"chirp/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormConfig is the configuration every connection is opened with.
// Retweets keep pointing at deleted originals, so the schema is created
// without foreign key constraints and cascades are done by the repositories.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	}
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&post.Post{}, "Likers", &post.Like{}); err != nil {
		return fmt.Errorf("setup likes join table: %w", err)
	}
	if err := db.SetupJoinTable(&post.Post{}, "Hashtags", &post.PostHashtag{}); err != nil {
		return fmt.Errorf("setup post_hashtags join table: %w", err)
	}
	if err := db.AutoMigrate(
		&user.User{},
		&hashtag.Hashtag{},
		&post.Post{},
		&post.Image{},
		&post.PostHashtag{},
		&post.Like{},
		&comment.Comment{},
	); err != nil {
		return err
	}

	// MySQL's default collations fold accents and letters like ß/ss, which
	// would merge distinct tags; names compare byte for byte instead.
	// PostgreSQL and SQLite compare exactly by default.
	if db.Dialector.Name() == "mysql" {
		if err := db.Exec(hashtagNameCollation).Error; err != nil {
			return fmt.Errorf("set hashtag name collation: %w", err)
		}
	}
	return nil
}

const hashtagNameCollation = "ALTER TABLE hashtags MODIFY name varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"

// translate maps gorm errors onto the core error taxonomy
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, errs.ErrConflict)
	default:
		return errs.Storage(op, err)
	}
}

// lockPost row-locks the post inside tx. A concurrent DeleteOwned either
// finishes first, and this returns gorm.ErrRecordNotFound, or waits until
// tx commits and then deletes what tx inserted. SQLite has no row locks
// and serializes writers instead.
func lockPost(tx *gorm.DB, id uuid.UUID) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Take(&post.Post{}).Error
}

// publicUser limits a preloaded user to the fields views may expose
func publicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "nickname")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
