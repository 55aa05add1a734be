package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	LogLevel    string
	// Session
	JWTSecret        string
	JWTExpire        time.Duration
	CookieExpireDays int
	CookieSecure     bool
	CSRFEnabled      bool
	// Redis
	RedisURL      string
	RedisPassword string
	// Resume storage (S3 or S3-compatible)
	S3Provider      string
	S3AccessKeyID   string
	S3SecretKey     string
	S3Region        string
	S3Bucket        string
	S3Endpoint      string
	S3PublicBaseURL string
	UploadTimeout   time.Duration
	MaxResumeBytes  int64
	// Malware scanning (clamd); empty address disables scanning
	ClamAVAddress string
	ClamAVTimeout time.Duration
	// Rate limiting
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitUploadThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "4000"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret:        getEnv("JWT_SECRET_KEY", ""),
		JWTExpire:        getEnvDuration("JWT_EXPIRE", 7*24*time.Hour),
		CookieExpireDays: getEnvInt("COOKIE_EXPIRE", 7),
		CookieSecure:     getEnvBool("COOKIE_SECURE", os.Getenv("GIN_MODE") == "release"),
		CSRFEnabled:      getEnvBool("CSRF_ENABLED", false),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		S3Provider:      getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:   getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Endpoint:      strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		UploadTimeout:   time.Duration(getEnvInt("UPLOAD_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxResumeBytes:  int64(getEnvInt("MAX_RESUME_BYTES", 5<<20)),

		ClamAVAddress: getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeout: time.Duration(getEnvInt("CLAMAV_TIMEOUT_SECONDS", 30)) * time.Second,

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET_KEY is missing. Sessions cannot be issued.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Sessions and rate limits will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("168h") and the bare day form ("7d").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
