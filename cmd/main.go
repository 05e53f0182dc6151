package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"store-it/internal/auth"
	"store-it/internal/config"
	"store-it/internal/handlers"
	"store-it/internal/middleware"
	"store-it/internal/repository"
	service "store-it/internal/services"
	"store-it/internal/storage"
	"store-it/internal/transcode"
	"store-it/internal/utils"
)

func main() {
	// load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	// logger
	logger, _ := utils.NewLogger(dev)
	defer func() { _ = logger.Sync() }()

	// Postgres
	db, err := repository.Open(cfg.DB)
	if err != nil {
		logger.Fatalf("postgres connect: %v", err)
	}
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	mediaRepo := repository.NewMediaRepo(db)

	// S3 store
	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
	if err != nil {
		logger.Fatalf("s3 init: %v", err)
	}

	// services
	sessions := auth.NewSessionManager(sessionRepo, logger)
	authSvc := auth.NewService(userRepo, sessions, logger)
	transcoder := transcode.NewFFmpeg(cfg.FFmpeg.Bin, logger)
	mediaSvc := service.NewMediaService(mediaRepo, store, transcoder, cfg.CDN.Domain, cfg.PresignTTL, logger)

	// handlers
	authH := handlers.NewAuthHandler(authSvc, sessions, logger)
	mediaH := handlers.NewMediaHandler(mediaSvc, logger)
	userH := handlers.NewUserHandler(authSvc, logger)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.Media.MaxUploadMB * 1024 * 1024,
	})
	app.Use(middleware.CORS())

	authGroup := app.Group("/auth")
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		limiter := middleware.NewRateLimiter(rdb, "ratelimit:auth", cfg.Redis.AuthLimit, cfg.AuthRateWindow)
		authGroup.Use(limiter.ByIP())
	}
	authGroup.Post("/signup", authH.Signup)
	authGroup.Post("/login", authH.Login)
	authGroup.Post("/logout", authH.Logout)

	app.Post("/validate", authH.Validate)

	protected := middleware.RequireAuth(sessions)
	app.Post("/media", protected, mediaH.Upload)
	app.Get("/media/list", protected, mediaH.List)
	app.Get("/me", protected, userH.Me)
	app.Post("/edit-profile", protected, userH.EditProfile)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting store-it backend on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")

	_ = app.Shutdown()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("shutdown completed")
}
