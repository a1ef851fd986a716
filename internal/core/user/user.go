package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Nickname  string    `gorm:"type:varchar(64);not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
