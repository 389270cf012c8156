package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers/dto"
	"github.com/thereayou/twitter-lite/internal/middleware"
	"github.com/thereayou/twitter-lite/internal/models"
	"github.com/thereayou/twitter-lite/internal/storage"
)

type PostHandler struct {
	db     *database.Database
	images *storage.ImageStore
}

func NewPostHandler(db *database.Database, images *storage.ImageStore) *PostHandler {
	return &PostHandler{db: db, images: images}
}

// ListPosts отдает ленту: посты подписок и свои, с фильтром ?hashtag=
func (h *PostHandler) ListPosts(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	limit, offset := parsePagination(c)

	posts, err := h.db.GetFeed(userID, c.Query("hashtag"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get posts"})
		return
	}

	result := make([]gin.H, len(posts))
	for i, post := range posts {
		result[i] = formatPostResponse(&post)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    result,
		"has_more": len(posts) == limit,
	})
}

// GetPost показывает только посты из видимого множества (свои или подписок)
func (h *PostHandler) GetPost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	post, err := h.db.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	visible, err := h.isVisible(userID, post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get post"})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, formatPostResponse(post))
}

// CreatePost создает пост; автор всегда берется из токена, не из тела запроса
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		Content:   req.Content,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := h.db.SavePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	fullPost, err := h.db.GetPost(post.ID.String())
	if err != nil {
		c.JSON(http.StatusCreated, formatPostResponse(post))
		return
	}

	c.JSON(http.StatusCreated, formatPostResponse(fullPost))
}

// UpdatePost — редактировать может только автор
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	post, err := h.db.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	if !postOwnedBy(post, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own posts"})
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post.Content = req.Content

	if err := h.db.UpdatePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	c.JSON(http.StatusOK, formatPostResponse(post))
}

// DeletePost — удалять может только автор
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	post, err := h.db.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	if !postOwnedBy(post, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own posts"})
		return
	}

	if err := h.db.DeletePost(post.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	h.images.Remove(post.Image)

	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// UploadImage прикрепляет картинку к посту, заменяя прежнюю
func (h *PostHandler) UploadImage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	post, err := h.db.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	if !postOwnedBy(post, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only upload images to your own posts"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "image file is required"}})
		return
	}

	path, err := h.images.SavePostImage(post.User.Nickname, file)
	if err != nil {
		if errors.Is(err, storage.ErrImageFormat) || errors.Is(err, storage.ErrImageTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": err.Error()}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	oldImage := post.Image
	post.Image = path

	if err := h.db.UpdatePost(post); err != nil {
		h.images.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	if oldImage != path {
		h.images.Remove(oldImage)
	}

	c.JSON(http.StatusOK, formatPostResponse(post))
}

// CreateComment — комментировать можно любой видимый пост
func (h *PostHandler) CreateComment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	post, err := h.db.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	visible, err := h.isVisible(userID, post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get post"})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"user_id":    comment.UserID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
}

// isVisible — пост виден, если он свой или автора из подписок
func (h *PostHandler) isVisible(userID uuid.UUID, post *models.Post) (bool, error) {
	if post.UserID == userID {
		return true, nil
	}
	return h.db.FollowExists(userID, post.UserID)
}

// formatPostResponse форматирует ответ для поста вместе с автором и комментариями
func formatPostResponse(post *models.Post) gin.H {
	response := gin.H{
		"id":         post.ID,
		"content":    post.Content,
		"image":      post.Image,
		"user_id":    post.UserID,
		"created_at": post.CreatedAt,
	}

	if post.User.ID != uuid.Nil {
		response["user"] = gin.H{
			"id":            post.User.ID,
			"nickname":      post.User.Nickname,
			"profile_image": post.User.ProfileImage,
		}
	}

	comments := make([]gin.H, len(post.Comments))
	for i, comment := range post.Comments {
		entry := gin.H{
			"id":         comment.ID,
			"user_id":    comment.UserID,
			"content":    comment.Content,
			"created_at": comment.CreatedAt,
		}
		if comment.User.ID != uuid.Nil {
			entry["user"] = gin.H{
				"id":       comment.User.ID,
				"nickname": comment.User.Nickname,
			}
		}
		comments[i] = entry
	}
	response["comments"] = comments

	return response
}
