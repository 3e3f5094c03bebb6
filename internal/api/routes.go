package api

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/metrics"
	"alcyxob/coach-studio/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// RouteDeps is everything SetupRoutes wires into handlers.
type RouteDeps struct {
	JWTSecret         string
	AuthService       service.AuthService
	TrainingService   service.TrainingService
	RosterService     service.RosterService
	DietService       service.DietService
	SuggestionService service.SuggestionService
	MediaService      service.MediaService

	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer // nil disables /metrics

	// RateLimiter may be nil, in which case suggestions are not rate limited.
	RateLimiter          RequestRateLimiter
	SuggestionsPerMinute int
}

func SetupRoutes(router *gin.Engine, deps RouteDeps) {
	authHandler := NewAuthHandler(deps.AuthService)
	exerciseHandler := NewExerciseHandler(deps.TrainingService, deps.MediaService)
	programHandler := NewProgramHandler(deps.TrainingService)
	dietHandler := NewDietHandler(deps.DietService)
	clientHandler := NewClientHandler(deps.RosterService)
	suggestionHandler := NewSuggestionHandler(deps.SuggestionService)

	authMiddleware := AuthMiddleware(deps.JWTSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)

	if deps.Metrics != nil {
		router.Use(RequestMetrics(deps.Metrics))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.GET("/status", authMiddleware, authHandler.Status)
		}
	}

	// All routes below require a trainer token.
	trainer := apiV1.Group("")
	trainer.Use(authMiddleware, trainerOnly)
	{
		// --- Exercise library ---
		exerciseGroup := trainer.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.POST("/media-upload-url", exerciseHandler.RequestMediaUploadURL)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:exerciseId", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", exerciseHandler.DeleteExercise)
		}

		// --- Programs, workout days and day exercises ---
		programGroup := trainer.Group("/programs")
		{
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("/:programId", programHandler.GetProgram)
			programGroup.DELETE("/:programId", programHandler.DeleteProgram)

			programGroup.POST("/:programId/days", programHandler.CreateWorkoutDay)
			programGroup.DELETE("/:programId/days/:dayId", programHandler.DeleteWorkoutDay)

			programGroup.POST("/:programId/days/:dayId/exercises", programHandler.AttachExercises)
			programGroup.POST("/:programId/days/:dayId/exercises/new", programHandler.CreateAndAttachExercise)
			programGroup.DELETE("/:programId/days/:dayId/exercises/:exerciseId", programHandler.RemoveExerciseFromDay)
		}

		// --- Diet ---
		dietGroup := trainer.Group("/diet-items")
		{
			dietGroup.GET("", dietHandler.ListDietItems)
			dietGroup.POST("", dietHandler.CreateDietItem)
			dietGroup.DELETE("/:itemId", dietHandler.DeleteDietItem)
		}

		// --- Clients and assignments ---
		trainer.GET("/clients", clientHandler.ListClients)
		trainer.GET("/clients/:clientId/assignment", clientHandler.GetAssignment)
		trainer.PUT("/clients/:clientId/assignment", clientHandler.AssignProgram)
		trainer.DELETE("/clients/:clientId/assignment", clientHandler.UnassignProgram)
		trainer.GET("/client-profiles", clientHandler.ListClientProfiles)

		// --- AI suggestions ---
		suggestionChain := []gin.HandlerFunc{}
		if deps.RateLimiter != nil && deps.SuggestionsPerMinute > 0 {
			var onLimited func()
			if deps.Metrics != nil {
				onLimited = deps.Metrics.RateLimited
			}
			suggestionChain = append(suggestionChain, RateLimitMiddleware(deps.RateLimiter, "suggestions", deps.SuggestionsPerMinute, onLimited))
		} else {
			log.Info("exercise suggestions are not rate limited")
		}
		suggestionChain = append(suggestionChain, suggestionHandler.SuggestExercises)
		trainer.POST("/suggestions/exercises", suggestionChain...)
	}
}
