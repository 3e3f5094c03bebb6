package main

import (
	"alcyxob/coach-studio/internal/ai"
	"alcyxob/coach-studio/internal/api"
	"alcyxob/coach-studio/internal/config"
	"alcyxob/coach-studio/internal/kvstore"
	"alcyxob/coach-studio/internal/logging"
	"alcyxob/coach-studio/internal/metrics"
	"alcyxob/coach-studio/internal/repository/kv"
	"alcyxob/coach-studio/internal/service"
	"alcyxob/coach-studio/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

// @title Coach Studio API
// @version 1.0
// @description API for a personal trainer: exercise library, training programs, diet items, clients and AI suggestions.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Infof("starting coach studio server, store backend: %s", cfg.Store.Backend)

	// --- Key-value store ---
	var (
		store       kvstore.Store
		redisClient *redis.Client
	)
	switch cfg.Store.Backend {
	case config.BackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatalf("could not connect to redis at %s: %s", cfg.Store.Redis.Addr, err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Errorf("close redis client: %s", err)
			}
		}()
		store = kvstore.NewRedisStore(redisClient, cfg.Store.Redis.KeyPrefix)
	case config.BackendMongo:
		mongoClient, err := kvstore.ConnectMongo(cfg.Store.Mongo.URI)
		if err != nil {
			log.Fatalf("could not connect to mongodb: %s", err)
		}
		defer func() {
			log.Info("disconnecting mongodb")
			if err := kvstore.DisconnectMongo(mongoClient); err != nil {
				log.Errorf("disconnect mongodb: %s", err)
			}
		}()
		store = kvstore.NewMongoStore(mongoClient.Database(cfg.Store.Mongo.Database))
	default:
		log.Warn("using the in-memory store, data is lost on restart")
		store = kvstore.NewMemoryStore()
	}

	// --- Repositories ---
	exerciseRepo := kv.NewExerciseRepository(store)
	programRepo := kv.NewProgramRepository(store)
	dietRepo := kv.NewDietItemRepository(store)
	clientRepo := kv.NewClientRepository(store)
	assignmentRepo := kv.NewAssignmentRepository(store)
	sessionRepo := kv.NewSessionRepository(store)

	// --- Metrics ---
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("coach_studio", "server", promRegistry)

	// --- Media storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %s", err)
		}
		log.Infof("media uploads go to bucket %s", cfg.S3.BucketName)
	} else {
		log.Warn("s3 is not configured, media uploads are disabled")
	}

	// --- Services ---
	authService, err := service.NewAuthService(
		clientRepo,
		sessionRepo,
		service.TrainerAccount{
			Email:    cfg.Auth.TrainerEmail,
			Name:     cfg.Auth.TrainerName,
			Password: cfg.Auth.TrainerPassword,
		},
		cfg.JWT.Secret,
		cfg.JWT.Expiration,
	)
	if err != nil {
		log.Fatalf("failed to initialize auth service: %s", err)
	}

	aiClient := ai.NewClient(ai.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, nil)
	if cfg.AI.APIKey == "" {
		log.Warn("ai.api_key is empty, suggestion requests are sent without credentials")
	}

	trainingService := service.NewTrainingService(exerciseRepo, programRepo, metricsManager)
	rosterService := service.NewRosterService(clientRepo, assignmentRepo, programRepo)
	dietService := service.NewDietService(dietRepo)
	suggestionService := service.NewSuggestionService(aiClient, metricsManager)
	mediaService := service.NewMediaService(fileStorage)

	// --- Rate limiting (redis only) ---
	var rateLimiter api.RequestRateLimiter
	if redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(redisClient)
	}

	// --- Gin engine and routes ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(log.StandardLogger().Writer()))

	api.SetupRoutes(router, api.RouteDeps{
		JWTSecret:            authService.GetJWTSecret(),
		AuthService:          authService,
		TrainingService:      trainingService,
		RosterService:        rosterService,
		DietService:          dietService,
		SuggestionService:    suggestionService,
		MediaService:         mediaService,
		Metrics:              metricsManager,
		Gatherer:             promRegistry,
		RateLimiter:          rateLimiter,
		SuggestionsPerMinute: cfg.AI.RateLimitPerMin,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // AI suggestions can be slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}

	log.Info("server exiting")
}
