// config/config.go

package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// JwtKey signs session tokens. Populated in Load.
var JwtKey []byte

// Config carries every runtime setting. Each optional integration degrades
// independently when its variables are absent: the app must stay usable in
// guest mode with nothing configured at all.
type Config struct {
	Addr        string
	LocalDBPath string

	// Remote persistence (authenticated mode). Empty disables sign-in.
	DatabaseURL string

	RedisAddr string

	JWTSecret string

	// Gemini study plans.
	GeminiAPIKey string

	// Google federated sign-in.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Password reset mail.
	SendgridAPIKey string
	FromEmail      string
	BaseURL        string
}

// Load reads settings from the environment, honoring a .env file when one is
// present next to the binary.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded settings from .env file")
	}

	cfg := Config{
		Addr:               getenv("ADDR", ":8080"),
		LocalDBPath:        getenv("LOCAL_DB_PATH", "school-planner.db"),
		DatabaseURL:        os.Getenv("DB_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		SendgridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		FromEmail:          getenv("FROM_EMAIL", "no-reply@school-planner.local"),
		BaseURL:            getenv("BASE_URL", "http://localhost:8080"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
		slog.Warn("JWT_SECRET is not set, using an insecure development key")
	}
	JwtKey = []byte(cfg.JWTSecret)

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
