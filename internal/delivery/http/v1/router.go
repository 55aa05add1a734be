package v1

import (
	"net/http"
	"time"

	"job-board-backend/config"
	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	// Redis backs the rate limiter; nil means in-memory counters.
	Redis  *goredis.Client
	Config *config.Config
	Logger *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.CookieSecure))
	r.Use(middleware.ErrorHandler(deps.Logger))

	limiter := middleware.NewRateLimiter(deps.Redis, deps.Logger)
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	authLimit := limiter.Middleware(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window))
	uploadLimit := limiter.Middleware(middleware.UploadRateLimitConfig(cfg.RateLimitUploadThreshold, window))

	v1 := r.Group("/api/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Degraded", "status": status})
			return
		}
		response.Success(c, http.StatusOK, "System operational", gin.H{"status": status})
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	if cfg.CSRFEnabled {
		protected.Use(middleware.CSRFMiddleware(cfg.CookieSecure))
	}
	{
		NewAuthHandler(v1, protected, deps.AuthUC, cfg, authLimit)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC, cfg.MaxResumeBytes, uploadLimit)
	}

	return r
}
