package api

import (
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewServer builds the gin engine with middleware and routes, wrapped in CORS.
func NewServer(cfg config.ServerConfig, userService service.UserService, exerciseService service.ExerciseService) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	SetupRoutes(router, cfg, userService, exerciseService)

	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler(router)
}

func SetupRoutes(
	router *gin.Engine,
	cfg config.ServerConfig,
	userService service.UserService,
	exerciseService service.ExerciseService,
) {
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	router.GET("/", func(c *gin.Context) {
		c.File(cfg.IndexFile)
	})
	router.Static("/public", cfg.PublicDir)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		userGroup := apiGroup.Group("/users")
		{
			userGroup.POST("", userHandler.CreateUser)
			userGroup.GET("", userHandler.ListUsers)

			userGroup.POST("/:id/exercises", exerciseHandler.AddExercise)
			userGroup.GET("/:id/exercises", exerciseHandler.GetUserExercises)
			userGroup.GET("/:id/logs", exerciseHandler.GetExerciseLog)
		}
	}
}
