package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/pkg/auth"
)

const UserIDKey = "userID"

// TTL ограничивает только кэш; сам токен живет до logout
const tokenCacheTTL = 24 * time.Hour

// AuthMiddleware резолвит bearer-токен в аккаунт: сначала Redis, потом таблица токенов
func AuthMiddleware(db *database.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}

		userID, ok := resolveToken(db, redisClient, key)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware для публичных read-endpoint'ов: анонимов пропускает
func OptionalAuthMiddleware(db *database.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := auth.ExtractTokenFromHeader(c.Request)
		if err == nil {
			if userID, ok := resolveToken(db, redisClient, key); ok {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}

func resolveToken(db *database.Database, redisClient *redis.Client, key string) (uuid.UUID, bool) {
	if userID, ok := lookupCached(redisClient, key); ok {
		return userID, true
	}

	user, err := db.FindUserByToken(key)
	if err != nil {
		return uuid.Nil, false
	}

	CacheToken(redisClient, key, user.ID)
	return user.ID, true
}

func lookupCached(redisClient *redis.Client, key string) (uuid.UUID, bool) {
	if redisClient == nil {
		return uuid.Nil, false
	}

	val, err := redisClient.Get(context.Background(), "token:"+key).Result()
	if err != nil {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// CacheToken кладет соответствие токен -> аккаунт в Redis
func CacheToken(redisClient *redis.Client, key string, userID uuid.UUID) {
	if redisClient == nil {
		return
	}
	redisClient.Set(context.Background(), "token:"+key, userID.String(), tokenCacheTTL)
}

// InvalidateToken убирает токен из кэша при logout
func InvalidateToken(redisClient *redis.Client, key string) {
	if redisClient == nil {
		return
	}
	redisClient.Del(context.Background(), "token:"+key)
}
