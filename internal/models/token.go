package models

import (
	"time"

	"github.com/google/uuid"
)

// Token — непрозрачный bearer-токен, не больше одного на аккаунт
type Token struct {
	Key       string    `gorm:"primaryKey;size:40"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
}
