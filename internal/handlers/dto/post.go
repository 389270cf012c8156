package dto

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateFollowRequest struct {
	// follower_id опционален: если задан, обязан совпадать с аккаунтом из токена
	FollowerID  string `json:"follower_id" binding:"omitempty,uuid"`
	FollowingID string `json:"following_id" binding:"required,uuid"`
}
