package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"main/config"
	"main/handler"
	"main/llm"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"SESSIONS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

// newEntryStore picks the persistence backend once; call sites only ever
// see the EntryStore interface.
func newEntryStore(cfg config.AppConfig) repository.EntryStore {
	switch cfg.StorageBackend {
	case config.StorageMongo:
		log.Printf("Using MongoDB entry storage (%s)", cfg.Database.DatabaseName)
		return repository.GetMongoEntryStore(utils.MongoClient)
	default:
		log.Printf("Using file entry storage (%s)", cfg.EntriesFile)
		return repository.NewFileEntryStore(cfg.EntriesFile)
	}
}

func newSummaryService() *usecase.SummaryService {
	client, err := llm.NewAzureClientFromEnv()
	if err != nil {
		log.Printf("AI summarization disabled: %v", err)
		return &usecase.SummaryService{}
	}
	return &usecase.SummaryService{Client: client}
}

func setupRouter(cfg config.AppConfig) *gin.Engine {
	router := gin.Default()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	resetTokenRepo := repository.GetResetTokenRepo(utils.MongoClient)

	entriesService := &usecase.EntriesService{Store: newEntryStore(cfg)}
	summaryService := newSummaryService()
	userService := &usecase.UserService{UsersRepo: userRepo}
	statsHandler := handler.NewStatsHandler(entriesService, sessionRepo)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService, sessionRepo)
			})
			auth.POST("/reset/request", func(c *gin.Context) {
				handler.RequestPasswordResetHandler(c, userRepo, resetTokenRepo)
			})
			auth.POST("/reset/confirm", func(c *gin.Context) {
				handler.ConfirmPasswordResetHandler(c, userRepo, resetTokenRepo)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userRepo)
			})
			user.GET("/stats", statsHandler.GetUserStats)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		entries := protected.Group("/entries")
		{
			entries.GET("/", func(c *gin.Context) {
				handler.GetEntriesHandler(c, entriesService)
			})
			entries.GET("/past", func(c *gin.Context) {
				handler.GetPastEntriesHandler(c, entriesService)
			})
			entries.POST("/", func(c *gin.Context) {
				handler.CreateEntryHandler(c, entriesService)
			})
			entries.PUT("/:id", func(c *gin.Context) {
				handler.UpdateEntryHandler(c, entriesService)
			})
			entries.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteEntryHandler(c, entriesService)
			})
			entries.POST("/bulk-delete", func(c *gin.Context) {
				handler.BulkDeleteHandler(c, entriesService)
			})
			entries.POST("/summarize", func(c *gin.Context) {
				handler.SummarizeEntriesHandler(c, entriesService, summaryService)
			})
		}
	}

	return router
}

func main() {
	cfg := config.Load()

	if err := repository.SetupIndexes(utils.MongoClient.Database(cfg.Database.DatabaseName)); err != nil {
		log.Printf("Failed to set up indexes: %v", err)
	}

	// Redis is optional; without it sessions hit Mongo and logout relies
	// on token expiry.
	if cfg.RedisURL != "" {
		cache, err := services.NewSessionCache(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Printf("Session cache disabled: %v", err)
		} else {
			services.GlobalSessionCache = cache
		}

		blacklist, err := services.NewTokenBlacklist(cfg.RedisURL)
		if err != nil {
			log.Printf("Token blacklist disabled: %v", err)
		} else {
			services.TokenBlacklist = blacklist
		}
	}

	router := setupRouter(cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
