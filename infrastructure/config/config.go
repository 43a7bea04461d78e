package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry time.Duration

	ServerPort  string
	ServerHost  string
	Environment string

	FrontendURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	RedisURL         string
	RateLimitEnabled bool

	LogLevel               string
	LogFormat              string
	LogCorrelationIDHeader string

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	MetricsEnabled bool
}

var (
	ErrMissingMongoURI  = errors.New("MONGO_URI is required")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	ErrInvalidJWTExpiry = errors.New("invalid JWT_EXPIRY format")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "clubhub"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		ServerPort:  getEnvOrDefault("SERVER_PORT", "5000"),
		ServerHost:  getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		Environment: getEnvOrDefault("ENV", "development"),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),

		SMTPHost:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvOrDefaultInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "noreply@esprit.tn"),

		RedisURL:         getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled: getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),

		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogCorrelationIDHeader: getEnvOrDefault("LOG_CORRELATION_ID_HEADER", "X-Correlation-ID"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),

		MetricsEnabled: getEnvOrDefaultBool("METRICS_ENABLED", true),
	}

	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	// Session lifetime, in seconds.
	expiry, err := parseSeconds(getEnvOrDefault("JWT_EXPIRY", "86400"))
	if err != nil {
		return nil, ErrInvalidJWTExpiry
	}
	cfg.JWTExpiry = expiry

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
