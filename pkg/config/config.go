package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	OpenAI   OpenAIConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	SessionTTLMin int
}

type JWTConfig struct {
	SecretKey string
}

type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt hash of the admin password
}

type OpenAIConfig struct {
	APIKey  string // empty disables LLM phrasing, chat falls back to templates
	Model   string
	BaseURL string
	// requests per second allowed against the API
	RateLimit float64
	Burst     int
}

type SeedConfig struct {
	// directory holding client_profiles.json / product_catalog.json;
	// empty skips seeding
	DataDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	if err != nil {
		return nil, errors.New("invalid session ttl")
	}

	rateLimit, err := strconv.ParseFloat(getEnv("OPENAI_RATE_LIMIT", "3"), 64)
	if err != nil {
		return nil, errors.New("invalid openai rate limit")
	}

	burst, err := strconv.Atoi(getEnv("OPENAI_BURST", "5"))
	if err != nil {
		return nil, errors.New("invalid openai burst")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Size Advisor API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "size_advisor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			SessionTTLMin: sessionTTL,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:   getEnv("OPENAI_BASE_URL", ""),
			RateLimit: rateLimit,
			Burst:     burst,
		},
		Seed: SeedConfig{
			DataDir: getEnv("SEED_DATA_DIR", ""),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Admin.PasswordHash == "" {
		return nil, errors.New("missing admin password hash")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
