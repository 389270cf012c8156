package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/twitter-lite/internal/models"
)

func (d *Database) CreateFollow(follow *models.Follow) error {
	return d.db.Create(follow).Error
}

func (d *Database) GetFollow(id string) (*models.Follow, error) {
	var follow models.Follow
	if err := d.db.First(&follow, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

func (d *Database) DeleteFollow(id uuid.UUID) error {
	return d.db.Delete(&models.Follow{}, "id = ?", id).Error
}

func (d *Database) FollowExists(followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// FollowingIDs возвращает аккаунты, на которые подписан userID (одним запросом)
func (d *Database) FollowingIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListFollows отдает ребра с необязательными фильтрами по обеим сторонам
func (d *Database) ListFollows(followerID, followingID *uuid.UUID, limit, offset int) ([]models.Follow, error) {
	var follows []models.Follow

	query := d.db.Model(&models.Follow{})
	if followerID != nil {
		query = query.Where("follower_id = ?", *followerID)
	}
	if followingID != nil {
		query = query.Where("following_id = ?", *followingID)
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Follower").
		Preload("Following").
		Find(&follows).Error

	if err != nil {
		return nil, err
	}

	return follows, nil
}
