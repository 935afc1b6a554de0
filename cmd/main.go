package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markdarcy45-oss/Teams/config"
	"github.com/markdarcy45-oss/Teams/db"
	"github.com/markdarcy45-oss/Teams/engine"
	"github.com/markdarcy45-oss/Teams/handlers"
	"github.com/markdarcy45-oss/Teams/live"
	"github.com/markdarcy45-oss/Teams/repositories"
	"github.com/markdarcy45-oss/Teams/routes"
	"github.com/markdarcy45-oss/Teams/services"
	"github.com/markdarcy45-oss/Teams/storage"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Logo uploads are optional: without R2 credentials the feature is
	// disabled and the rest of the service runs normally.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("object storage not configured, logo uploads disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	lockedRepo := repositories.NewPostgresLockedTeamRepository(dbConn)

	authService := services.NewAuthService(userRepo, gameRepo, cfg.MasterInviteCode)
	gameService := services.NewGameService(gameRepo, userRepo, uploader)
	rosterService := services.NewRosterService(dbConn, gameRepo, playerRepo)
	teamService := services.NewTeamService(playerRepo, lockedRepo, engine.NewRandomSearchBalancer(), wsHub)
	resultService := services.NewResultService(dbConn, resultRepo, wsHub)
	statsService := services.NewStatsService(resultRepo, lockedRepo, logger)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, []byte(cfg.JWTSecretKey)),
		Game:      handlers.NewGameHandler(gameService),
		Roster:    handlers.NewRosterHandler(rosterService),
		Team:      handlers.NewTeamHandler(teamService),
		Result:    handlers.NewResultHandler(resultService),
		Stats:     handlers.NewStatsHandler(statsService),
		WebSocket: handlers.NewWebSocketHandler(wsHub),
	}, []byte(cfg.JWTSecretKey))
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
