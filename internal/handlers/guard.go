package handlers

import (
	"github.com/google/uuid"
	"github.com/thereayou/twitter-lite/internal/models"
)

// Явные проверки владения: каждая мутация вызывает свою перед записью в БД.

// followOwnedBy — ребро может менять и удалять только его follower
func followOwnedBy(follow *models.Follow, actor uuid.UUID) bool {
	return follow.FollowerID == actor
}

// postOwnedBy — пост мутирует только его автор
func postOwnedBy(post *models.Post, actor uuid.UUID) bool {
	return post.UserID == actor
}

// declaredFollowerMatches — нельзя создавать ребро от имени чужого аккаунта
func declaredFollowerMatches(declared string, actor uuid.UUID) bool {
	return declared == "" || declared == actor.String()
}
