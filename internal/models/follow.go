package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow — направленное ребро "follower видит посты following"
type Follow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	CreatedAt   time.Time

	// Связи
	Follower  User `gorm:"foreignKey:FollowerID"`
	Following User `gorm:"foreignKey:FollowingID"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
