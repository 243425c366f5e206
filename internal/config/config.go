package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret string
	// AccessTokenMinutes bounds role freshness: roles are embedded in the
	// access token at issuance and are not re-read from the database until
	// the token expires.
	AccessTokenMinutes     int
	RefreshTokenDays       int
	VerificationTokenHours int

	EmailProvider  string
	EmailFrom      string
	ResendAPIKey   string
	SendGridAPIKey string
	AppURL         string

	SupabaseURL        string
	SupabaseServiceKey string

	Environment string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/armentum?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		JWTSecret:              getEnv("JWT_SECRET", "change-me"),
		AccessTokenMinutes:     getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenDays:       getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7),
		VerificationTokenHours: getEnvInt("VERIFICATION_TOKEN_EXPIRE_HOURS", 24),

		EmailProvider:  getEnv("EMAIL_PROVIDER", "development"),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@armentum.com"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		AppURL:         getEnv("APP_URL", "http://localhost:5173"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),

		Environment: getEnv("ENVIRONMENT", "development"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
