package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nickname     string    `gorm:"uniqueIndex;not null;size:15"`
	DateOfBirth  *time.Time
	Biography    string `gorm:"size:400"`
	ProfileImage string
	IsStaff      bool   `gorm:"default:false"`
	IsSuperuser  bool   `gorm:"default:false"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// BeforeCreate назначает ID на стороне приложения, одинаково для postgres и sqlite
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
