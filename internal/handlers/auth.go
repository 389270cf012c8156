package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers/dto"
	"github.com/thereayou/twitter-lite/internal/middleware"
	"github.com/thereayou/twitter-lite/internal/models"
	"github.com/thereayou/twitter-lite/pkg/auth"
)

type AuthHandler struct {
	db    *database.Database
	redis *redis.Client
}

func NewAuthHandler(db *database.Database, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{db: db, redis: rdb}
}

// Register создает аккаунт; уникальность email и nickname проверяется заранее
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.FindUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "user with this email already exists"}})
		return
	}
	if _, err := h.db.FindUserByNickname(req.Nickname); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"nickname": "user with this nickname already exists"}})
		return
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := parseDate(*req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date_of_birth": "expected format YYYY-MM-DD"}})
			return
		}
		dateOfBirth = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user := &models.User{
		Email:        req.Email,
		Nickname:     req.Nickname,
		DateOfBirth:  dateOfBirth,
		Biography:    req.Biography,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		// Страховка от гонки на уникальных индексах
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, formatUserResponse(user))
}

// Login проверяет пару email/пароль и выдает токен (существующий или новый)
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.db.GetOrCreateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	middleware.CacheToken(h.redis, token.Key, user.ID)

	c.JSON(http.StatusOK, gin.H{"token": token.Key})
}

// Logout удаляет токен аккаунта; повторный вызов — 404
func (h *AuthHandler) Logout(c *gin.Context) {
	key, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return
	}

	if err := h.db.DeleteTokenByKey(key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke token"})
		return
	}

	middleware.InvalidateToken(h.redis, key)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
