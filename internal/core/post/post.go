package post

import (
	"time"

	"chirp/internal/core/comment"
	"chirp/internal/core/hashtag"
	"chirp/internal/core/user"

	"github.com/gofrs/uuid"
)

// RetweetContent is the fixed content of every retweet post.
const RetweetContent = "retweet"

// Post is either an original post or, when RetweetID is set, a retweet of an
// original. Retweets never point at other retweets.
//
// retweet_id carries no foreign key: deleting an original leaves its retweets
// pointing at a missing row.
type Post struct {
	ID        uuid.UUID         `gorm:"primary_key;type:char(36)"`
	Content   string            `gorm:"type:text;not null"`
	UserID    uuid.UUID         `gorm:"type:char(36);not null;index;uniqueIndex:uniq_user_retweet"`
	User      user.User         `gorm:"foreignkey:UserID"`
	RetweetID *uuid.UUID        `gorm:"type:char(36);index;uniqueIndex:uniq_user_retweet"`
	Retweet   *Post             `gorm:"foreignkey:RetweetID"`
	Images    []Image           `gorm:"foreignkey:PostID"`
	Hashtags  []hashtag.Hashtag `gorm:"many2many:post_hashtags"`
	Comments  []comment.Comment `gorm:"foreignkey:PostID"`
	Likers    []user.User       `gorm:"many2many:likes"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

// IsRetweet reports whether p reposts another post.
func (p *Post) IsRetweet() bool { return p.RetweetID != nil }

type Image struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Src       string    `gorm:"type:varchar(512);not null"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// PostHashtag is the post_hashtags join row.
type PostHashtag struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	HashtagID uuid.UUID `gorm:"primaryKey;type:char(36)"`
}

// Like is the likes join row; the composite key makes a like exist at most once.
type Like struct {
	PostID uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID uuid.UUID `gorm:"primaryKey;type:char(36)"`
}
