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

	"job-board-backend/config"
	_ "job-board-backend/docs" // Important for Swagger
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/postgres"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/database"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/security/antivirus"
	"job-board-backend/pkg/storage"
	"job-board-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// @title           Job Board API
// @version         1.0
// @description     Job board backend: accounts, job postings and applications with resume upload.
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	appLog := logger.New(cfg.LogLevel)
	defer appLog.Sync()
	appLog.Info("Starting job board backend", zap.String("port", cfg.Port))

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		appLog.Fatal("Failed to apply schema", zap.Error(err))
	}

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	var sessions domain.SessionStore
	redisClient, err = redis.New(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		appLog.Warn("Redis not configured, using in-memory session revocation and rate limits")
		sessions = redis.NewMemorySessionStore()
	case err != nil:
		appLog.Fatal("Failed to connect to redis", zap.Error(err))
	default:
		defer redisClient.Close()
		sessions = redis.NewSessionStore(redisClient)
	}

	// 5. Setup Resume Storage
	s3Cfg := storage.S3ClientConfig{
		Provider:        storage.ParseProvider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	}
	s3Client, err := storage.NewS3Client(ctx, s3Cfg)
	if err != nil {
		appLog.Fatal("Failed to create S3 client", zap.Error(err))
	}
	uploader := storage.NewS3Uploader(s3Client, s3Cfg, cfg.S3PublicBaseURL, cfg.UploadTimeout)
	if cfg.S3Bucket == "" {
		appLog.Warn("S3_BUCKET not configured, resume uploads will fail")
	}

	var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
	var clamav *antivirus.ClamAVScanner
	if cfg.ClamAVAddress != "" {
		clamav = antivirus.NewClamAVScanner(cfg.ClamAVAddress, cfg.ClamAVTimeout)
		scanner = clamav
	} else {
		appLog.Warn("CLAMAV_ADDRESS not configured, resumes are not scanned")
	}
	resumes := antivirus.NewGuardedUploader(uploader, scanner, appLog)

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	validate := validation.New()
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpire)

	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, sessions, validate, appLog)
	jobUC := usecase.NewJobUsecase(jobRepo, validate, appLog)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, resumes, validate, appLog)

	checks := map[string]usecase.PingFunc{
		"database":  dbPool.Ping,
		"redis":     nil,
		"storage":   nil,
		"antivirus": nil,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	if cfg.S3Bucket != "" {
		checks["storage"] = uploader.Ping
	}
	if clamav != nil {
		checks["antivirus"] = clamav.Ping
	}
	healthUC := usecase.NewHealthUsecase(checks, appLog)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		Redis:         redisClient,
		Config:        cfg,
		Logger:        appLog,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exiting")
}
