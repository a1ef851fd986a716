package database

import (
	"context"

	"chirp/internal/core/hashtag"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagRepositoryDatabase implements HashtagRepository on gorm
type HashtagRepositoryDatabase struct {
	db *gorm.DB
}

func NewHashtagRepositoryDatabase(db *gorm.DB) *HashtagRepositoryDatabase {
	return &HashtagRepositoryDatabase{db: db}
}

func (repo *HashtagRepositoryDatabase) FindByName(ctx context.Context, name string) (*hashtag.Hashtag, error) {
	var h hashtag.Hashtag
	if err := repo.db.WithContext(ctx).Where("name = ?", name).First(&h).Error; err != nil {
		return nil, translate("find hashtag", err)
	}
	return &h, nil
}

// CreateIfAbsent relies on the unique index on name: a concurrent insert of the
// same name is skipped by the database and reported as not created.
func (repo *HashtagRepositoryDatabase) CreateIfAbsent(ctx context.Context, h *hashtag.Hashtag) (bool, error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(h)
	if res.Error != nil {
		return false, translate("create hashtag", res.Error)
	}
	return res.RowsAffected == 1, nil
}
