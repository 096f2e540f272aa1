package main

import (
	"alcyxob/exercise-tracker/internal/api"
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"alcyxob/exercise-tracker/internal/repository/mongo"
	"alcyxob/exercise-tracker/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// @title Exercise Tracker API
// @version 1.0
// @description Create users, log exercises against them, and query per-user exercise logs.
// @BasePath /api
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("Could not initialize logger")
	}
	log.Info().Str("driver", cfg.Database.Driver).Int("port", cfg.Server.Port).Msg("Configuration loaded")

	// --- Repositories ---
	var (
		userRepo     repository.UserRepository
		exerciseRepo repository.ExerciseRepository
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using the in-memory store; data is lost on exit")
		store := memory.NewStore()
		userRepo, exerciseRepo = store.Users(), store.Exercises()
	default:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not connect to MongoDB")
		}
		defer func() {
			log.Info().Msg("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Info().Str("database", cfg.Database.Name).Msg("Database connection established")

		// The unique username index backs get-or-create, so a failure here is fatal.
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err = mongo.EnsureIndexes(ctx, appDB)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Could not ensure indexes")
		}

		userRepo = mongo.NewMongoUserRepository(appDB)
		exerciseRepo = mongo.NewMongoExerciseRepository(appDB)
	}

	// --- Services ---
	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(userRepo, exerciseRepo)

	// --- HTTP Server ---
	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      api.NewServer(cfg.Server, userService, exerciseService),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", server.Addr).Msg("Your app is listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting.")
}
