package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	AI       AIConfig
	YouTube  YouTubeConfig
	Storage  StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string `envconfig:"DB_DRIVER" default:"sqlite"` // "sqlite" or "postgres"
	Path        string `envconfig:"DB_PATH" default:"youtube_summaries.db"`
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"video_summarizer"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	Backend    string        `envconfig:"SESSION_BACKEND" default:"memory"` // "memory" or "redis"
	TTL        time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieName string        `envconfig:"SESSION_COOKIE" default:"sid"`
}

// AIConfig holds the text-completion service configuration
type AIConfig struct {
	APIKey  string        `envconfig:"AI_API_KEY"`
	BaseURL string        `envconfig:"AI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	Model   string        `envconfig:"AI_MODEL" default:"gemini-2.5-flash"`
	Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
}

// YouTubeConfig holds caption retrieval configuration
type YouTubeConfig struct {
	BaseURL  string        `envconfig:"YOUTUBE_BASE_URL" default:"https://www.youtube.com"`
	Timeout  time.Duration `envconfig:"YOUTUBE_TIMEOUT" default:"30s"`
	Language string        `envconfig:"YOUTUBE_LANGUAGE" default:"en-US,en;q=0.9"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"video-summaries"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"24h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// Accept the Gemini key names as well
	if config.AI.APIKey == "" {
		config.AI.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory or redis, got %q", c.Session.Backend)
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
