package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers/dto"
	"github.com/thereayou/twitter-lite/internal/middleware"
	"github.com/thereayou/twitter-lite/internal/models"
	"github.com/thereayou/twitter-lite/internal/storage"
)

type UserHandler struct {
	db     *database.Database
	images *storage.ImageStore
}

func NewUserHandler(db *database.Database, images *storage.ImageStore) *UserHandler {
	return &UserHandler{db: db, images: images}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}

// UpdateMe обновляет только переданные поля; email неизменяем
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Nickname != "" && req.Nickname != user.Nickname {
		if _, err := h.db.FindUserByNickname(req.Nickname); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"nickname": "user with this nickname already exists"}})
			return
		}
		user.Nickname = req.Nickname
	}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := parseDate(*req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date_of_birth": "expected format YYYY-MM-DD"}})
			return
		}
		user.DateOfBirth = parsed
	}

	if req.Biography != nil {
		user.Biography = *req.Biography
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}

// DeleteMe удаляет аккаунт вместе с его данными
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	if err := h.db.DeleteUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// GetUser возвращает публичный профиль по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.db.GetUser(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"nickname":      user.Nickname,
		"biography":     user.Biography,
		"profile_image": user.ProfileImage,
	})
}

// SearchUsers — фильтр по подстроке nickname с пагинацией, доступен и анонимам
func (h *UserHandler) SearchUsers(c *gin.Context) {
	limit, offset := parsePagination(c)

	users, err := h.db.SearchUsersByNickname(c.Query("nickname"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search users"})
		return
	}

	result := make([]gin.H, len(users))
	for i, user := range users {
		result[i] = gin.H{
			"id":            user.ID,
			"nickname":      user.Nickname,
			"profile_image": user.ProfileImage,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    result,
		"has_more": len(users) == limit,
	})
}

// UploadProfileImage заменяет аватар; старый файл убирается best-effort
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "image file is required"}})
		return
	}

	path, err := h.images.SaveUserImage(user.Email, file)
	if err != nil {
		if errors.Is(err, storage.ErrImageFormat) || errors.Is(err, storage.ErrImageTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": err.Error()}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	oldImage := user.ProfileImage
	user.ProfileImage = path

	if err := h.db.UpdateUser(user); err != nil {
		h.images.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	if oldImage != path {
		h.images.Remove(oldImage)
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}

// formatUserResponse форматирует ответ для аккаунта (без хэша пароля)
func formatUserResponse(user *models.User) gin.H {
	response := gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"nickname":      user.Nickname,
		"biography":     user.Biography,
		"profile_image": user.ProfileImage,
		"is_staff":      user.IsStaff,
		"created_at":    user.CreatedAt,
	}

	if user.DateOfBirth != nil {
		response["date_of_birth"] = user.DateOfBirth.Format("2006-01-02")
	}

	return response
}
