package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers/dto"
	"github.com/thereayou/twitter-lite/internal/middleware"
	"github.com/thereayou/twitter-lite/internal/models"
)

type FollowHandler struct {
	db *database.Database
}

func NewFollowHandler(db *database.Database) *FollowHandler {
	return &FollowHandler{db: db}
}

// ListFollows — чтение ребер публично, фильтры по обеим сторонам
func (h *FollowHandler) ListFollows(c *gin.Context) {
	limit, offset := parsePagination(c)

	var followerID, followingID *uuid.UUID
	if f := c.Query("follower"); f != "" {
		id, err := uuid.Parse(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid follower id"})
			return
		}
		followerID = &id
	}
	if f := c.Query("following"); f != "" {
		id, err := uuid.Parse(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid following id"})
			return
		}
		followingID = &id
	}

	follows, err := h.db.ListFollows(followerID, followingID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list follows"})
		return
	}

	result := make([]gin.H, len(follows))
	for i, follow := range follows {
		result[i] = formatFollowResponse(&follow)
	}

	c.JSON(http.StatusOK, gin.H{
		"follows":  result,
		"has_more": len(follows) == limit,
	})
}

// CreateFollow создает ребро только от имени аккаунта из токена
func (h *FollowHandler) CreateFollow(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !declaredFollowerMatches(req.FollowerID, userID) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"follower_id": "cannot follow on behalf of another user"}})
		return
	}

	followingID, err := uuid.Parse(req.FollowingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"following_id": "invalid user id"}})
		return
	}

	if followingID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"following_id": "cannot follow yourself"}})
		return
	}

	if _, err := h.db.GetUser(followingID.String()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"following_id": "user not found"}})
		return
	}

	exists, err := h.db.FollowExists(userID, followingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create follow"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"following_id": "already following this user"}})
		return
	}

	follow := &models.Follow{
		FollowerID:  userID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateFollow(follow); err != nil {
		// Гонка на уникальной паре решается на уровне индекса
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create follow"})
		return
	}

	c.JSON(http.StatusCreated, formatFollowResponse(follow))
}

// DeleteFollow — отписаться может только владелец ребра
func (h *FollowHandler) DeleteFollow(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	follow, err := h.db.GetFollow(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "follow not found"})
		return
	}

	if !followOwnedBy(follow, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own follows"})
		return
	}

	if err := h.db.DeleteFollow(follow.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete follow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed successfully"})
}

// formatFollowResponse форматирует ответ для ребра подписки
func formatFollowResponse(follow *models.Follow) gin.H {
	response := gin.H{
		"id":           follow.ID,
		"follower_id":  follow.FollowerID,
		"following_id": follow.FollowingID,
		"created_at":   follow.CreatedAt,
	}

	if follow.Follower.ID != uuid.Nil {
		response["follower"] = gin.H{
			"id":       follow.Follower.ID,
			"nickname": follow.Follower.Nickname,
		}
	}
	if follow.Following.ID != uuid.Nil {
		response["following"] = gin.H{
			"id":       follow.Following.ID,
			"nickname": follow.Following.Nickname,
		}
	}

	return response
}
