package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers"
	"github.com/thereayou/twitter-lite/internal/middleware"
)

func APIEndpoints(
	r *gin.Engine,
	db *database.Database,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	followH *handlers.FollowHandler,
	postH *handlers.PostHandler,
) {
	authRequired := middleware.AuthMiddleware(db, rdb)
	authOptional := middleware.OptionalAuthMiddleware(db, rdb)

	// User endpoints
	users := r.Group("/users")
	{
		users.POST("/register", authH.Register)
		users.POST("/login", authH.Login)
		users.POST("/logout", authH.Logout)

		users.GET("", authOptional, userH.SearchUsers)
		users.GET("/:id", userH.GetUser)

		me := users.Group("/me", authRequired)
		{
			me.GET("", userH.GetMe)
			me.PUT("", userH.UpdateMe)
			me.PATCH("", userH.UpdateMe)
			me.DELETE("", userH.DeleteMe)
			me.POST("/upload-image", userH.UploadProfileImage)
		}
	}

	// Follow endpoints
	follows := r.Group("/follows")
	{
		follows.GET("", authOptional, followH.ListFollows)
		follows.POST("", authRequired, followH.CreateFollow)
		follows.DELETE("/:id", authRequired, followH.DeleteFollow)
	}

	// Post endpoints
	posts := r.Group("/posts", authRequired)
	{
		posts.GET("", postH.ListPosts)
		posts.POST("", postH.CreatePost)
		posts.GET("/:id", postH.GetPost)
		posts.PUT("/:id", postH.UpdatePost)
		posts.DELETE("/:id", postH.DeletePost)
		posts.POST("/:id/upload-image", postH.UploadImage)
		posts.POST("/:id/comments", postH.CreateComment)
	}
}
