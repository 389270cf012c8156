package database

import (
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/twitter-lite/internal/models"
	"gorm.io/gorm"
)

func (d *Database) SavePost(post *models.Post) error {
	return d.db.Create(post).Error
}

func (d *Database) GetPost(id string) (*models.Post, error) {
	var post models.Post
	err := d.db.
		Preload("User").
		Preload("Comments.User").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (d *Database) UpdatePost(post *models.Post) error {
	return d.db.Save(post).Error
}

func (d *Database) DeletePost(id string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
}

// GetFeed собирает ленту: посты подписок плюс свои, новые первыми.
// hashtag фильтрует по подстроке контента без учета регистра.
func (d *Database) GetFeed(userID uuid.UUID, hashtag string, limit, offset int) ([]models.Post, error) {
	followingIDs, err := d.FollowingIDs(userID)
	if err != nil {
		return nil, err
	}

	// Свои посты видны всегда, независимо от подписок
	visibleIDs := append(followingIDs, userID)

	query := d.db.Where("user_id IN ?", visibleIDs)

	if hashtag != "" {
		query = query.Where(`LOWER(content) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(hashtag))+"%")
	}

	var posts []models.Post
	err = query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("User").
		Preload("Comments.User").
		Find(&posts).Error

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (d *Database) SaveComment(comment *models.Comment) error {
	return d.db.Create(comment).Error
}
