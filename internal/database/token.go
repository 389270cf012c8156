package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/twitter-lite/internal/models"
	"github.com/thereayou/twitter-lite/pkg/auth"
	"gorm.io/gorm"
)

// GetOrCreateToken возвращает действующий токен аккаунта или создает новый.
// Инвариант: не больше одного токена на аккаунт.
func (d *Database) GetOrCreateToken(userID uuid.UUID) (*models.Token, error) {
	var token models.Token

	err := d.db.Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key, err := auth.GenerateKey()
	if err != nil {
		return nil, err
	}

	token = models.Token{
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := d.db.Create(&token).Error; err != nil {
		return nil, err
	}

	return &token, nil
}

// FindUserByToken возвращает владельца токена; неизвестный ключ — не аутентифицирован
func (d *Database) FindUserByToken(key string) (*models.User, error) {
	var token models.Token
	if err := d.db.Preload("User").First(&token, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &token.User, nil
}

// DeleteTokenByKey удаляет токен; если его нет — gorm.ErrRecordNotFound
func (d *Database) DeleteTokenByKey(key string) error {
	res := d.db.Delete(&models.Token{}, "key = ?", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
