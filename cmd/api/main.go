package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cinetrack/internal/config"
	"cinetrack/internal/database"
	"cinetrack/internal/middleware"
	"cinetrack/internal/modules/admin"
	"cinetrack/internal/modules/auth"
	"cinetrack/internal/modules/backup"
	"cinetrack/internal/modules/friendship"
	"cinetrack/internal/modules/media"
	"cinetrack/internal/modules/metadata"
	"cinetrack/internal/modules/profile"
	"cinetrack/internal/modules/suggestion"
	"cinetrack/internal/notification"
	"cinetrack/internal/pkg/jwt"
	"cinetrack/internal/pkg/response"
	"cinetrack/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// snapshot the database file before gorm opens it
	var backupMgr *backup.Manager
	if database.IsPostgres(cfg.DatabaseURL) {
		backupMgr = backup.NewManager("", cfg.BackupDir)
	} else {
		backupMgr = backup.NewManager(cfg.DatabaseURL, cfg.BackupDir)
		backupMgr.StartupBackup()
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// outbound notifications
	hub := notification.NewHub()
	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		User:        cfg.EmailUser,
		Password:    cfg.EmailPass,
		FrontendURL: cfg.FrontendURL,
	})
	dispatcher := notification.NewDispatcher(mailer, hub)

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	// services
	authService := auth.NewService(userRepo, jwtService)
	profileService := profile.NewService(profileRepo)
	mediaService := media.NewService(mediaRepo)
	friendshipService := friendship.NewService(friendshipRepo, userRepo, mediaRepo, dispatcher)
	suggestionService := suggestion.NewService(suggestionRepo, userRepo, friendshipRepo, mediaRepo, dispatcher)
	adminService := admin.NewService(statsRepo)

	// handlers
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	mediaHandler := media.NewHandler(mediaService)
	friendshipHandler := friendship.NewHandler(friendshipService)
	suggestionHandler := suggestion.NewHandler(suggestionService)
	adminHandler := admin.NewHandler(adminService, cfg.AdminEmails)
	metadataHandler := metadata.NewHandler(
		metadata.NewOMDbClient(cfg.OMDbAPIKey, ""),
		metadata.NewTMDBClient(cfg.TMDBAPIKey, ""),
	)
	backupHandler := backup.NewHandler(backupMgr)
	wsHandler := notification.NewWSHandler(hub)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorLogger())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
	})

	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	mediaHandler.RegisterRoutes(protected)
	friendshipHandler.RegisterRoutes(protected)
	suggestionHandler.RegisterRoutes(protected)
	metadataHandler.RegisterRoutes(protected)
	wsHandler.RegisterRoutes(protected)
	backupHandler.RegisterRoutes(protected)

	adminGroup := protected.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(cfg.AdminEmails))
	adminHandler.RegisterRoutes(protected, adminGroup)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}

	// flush queued notifications, then drop websocket clients
	dispatcher.Close()
	hub.Close()

	log.Println("Server stopped")
}
