package server

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/twitter-lite/internal/database"
	"github.com/thereayou/twitter-lite/internal/handlers"
	"github.com/thereayou/twitter-lite/internal/storage"
)

type Server struct {
	Router  *gin.Engine
	DB      *database.Database
	Redis   *redis.Client
	AuthH   *handlers.AuthHandler
	UserH   *handlers.UserHandler
	FollowH *handlers.FollowHandler
	PostH   *handlers.PostHandler
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media"
	}
	images := storage.NewImageStore(mediaRoot)

	authH := handlers.NewAuthHandler(dbConn, rdb)
	userH := handlers.NewUserHandler(dbConn, images)
	followH := handlers.NewFollowHandler(dbConn)
	postH := handlers.NewPostHandler(dbConn, images)

	router := gin.Default()
	APIEndpoints(router, dbConn, rdb, authH, userH, followH, postH)

	return &Server{
		Router:  router,
		DB:      dbConn,
		Redis:   rdb,
		AuthH:   authH,
		UserH:   userH,
		FollowH: followH,
		PostH:   postH,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
