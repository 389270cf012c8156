package database

import (
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/twitter-lite/internal/models"
	"gorm.io/gorm"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByNickname(nickname string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("nickname = ?", nickname).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsersByNickname ищет пользователей по подстроке nickname без учета регистра
func (d *Database) SearchUsersByNickname(query string, limit, offset int) ([]models.User, error) {
	var users []models.User

	err := d.db.
		Where(`LOWER(nickname) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(query))+"%").
		Order("nickname ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

// DeleteUser удаляет аккаунт вместе с его токеном, ребрами, постами и комментариями
func (d *Database) DeleteUser(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "user_id = ?", id).Error; err != nil {
			return err
		}

		var postIDs []uuid.UUID
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Delete(&models.Comment{}, "post_id IN ?", postIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Post{}, "user_id = ?", id).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.Follow{}, "follower_id = ? OR following_id = ?", id, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Token{}, "user_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
