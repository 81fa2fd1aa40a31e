package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chathub/database"
	"chathub/internal/config"
	"chathub/internal/http-api/broadcast"
	"chathub/internal/http-api/handler"
	"chathub/internal/http-api/middleware"
	"chathub/internal/http-api/repository"
	"chathub/internal/http-api/service"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db, logger)

	// Connect to Redis (message fan-out)
	redisClient, err := broadcast.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Delivery notifier
	notifier := broadcast.NewNotifier(broadcast.NewRedisPublisher(redisClient))
	authorizer := broadcast.NewAuthorizer(roomRepo)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	roomService := service.NewRoomService(roomRepo)
	messageService := service.NewMessageService(messageRepo, roomRepo, notifier, cfg.MaxMessageLength, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService, cfg.DefaultPageSize, cfg.MaxPageSize)
	messageHandler := handler.NewMessageHandler(messageService, cfg.DefaultPageSize, cfg.MaxPageSize)
	broadcastHandler := handler.NewBroadcastHandler(authorizer)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive and database connected",
		})
	})

	// Public routes
	api := r.Group("/api")
	authHandler.RegisterRoutes(api)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	roomHandler.RegisterRoutes(protected)
	messageHandler.RegisterRoutes(protected, middleware.RateLimitMiddleware(cfg.SendRateLimit, cfg.SendRateBurst))
	broadcastHandler.RegisterRoutes(protected)

	httpServer := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", httpServer)
	if err := r.Run(httpServer); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
