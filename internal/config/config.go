package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type StorageConfig struct {
	// Backend is "local" or "r2".
	Backend  string
	LocalDir string
	// PublicURL prefixes stored image paths in API responses.
	PublicURL string
	R2        R2Config
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	Port        string
	DatabaseURL string
	FixturesDir string

	JWTSecret string
	JWTExpiry time.Duration

	Storage StorageConfig
	Email   EmailConfig

	// Policy bounds for a single ingredient line in a recipe.
	MinIngredientAmount int
	MaxIngredientAmount int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FixturesDir: getEnv("FIXTURES_DIR", "fixtures"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}
	cfg.JWTExpiry = expiry

	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", "local")
	cfg.Storage.LocalDir = getEnv("MEDIA_DIR", "media/recipes")
	cfg.Storage.PublicURL = getEnv("MEDIA_PUBLIC_URL", "/media/recipes")
	cfg.Storage.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.Storage.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.Storage.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.Storage.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.Storage.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Email.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")

	if cfg.MinIngredientAmount, err = getEnvInt("MIN_INGREDIENT_AMOUNT", 1); err != nil {
		return nil, err
	}
	if cfg.MaxIngredientAmount, err = getEnvInt("MAX_INGREDIENT_AMOUNT", 999); err != nil {
		return nil, err
	}
	if cfg.MinIngredientAmount < 1 || cfg.MaxIngredientAmount < cfg.MinIngredientAmount {
		return nil, fmt.Errorf("ingredient amount bounds are inconsistent: min=%d max=%d",
			cfg.MinIngredientAmount, cfg.MaxIngredientAmount)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %w", key, err)
	}
	return parsed, nil
}
