package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	OpenAI        OpenAIConfig
	Telephony     TelephonyConfig
	Storage       StorageConfig
	Transcription TranscriptionConfig
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
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"hospital_booking"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"your-refresh-secret-change-in-production"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`
}

// OpenAIConfig holds chat-completion provider configuration.
// BaseURL may point at any OpenAI-compatible endpoint such as OpenRouter.
type OpenAIConfig struct {
	APIKey      string  `envconfig:"OPENAI_API_KEY" default:""`
	BaseURL     string  `envconfig:"OPENAI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Model       string  `envconfig:"OPENAI_MODEL" default:"openai/gpt-4o-mini"`
	Temperature float32 `envconfig:"OPENAI_TEMPERATURE" default:"0.3"`
	MaxTokens   int     `envconfig:"OPENAI_MAX_TOKENS" default:"180"`
	MaxRounds   int     `envconfig:"OPENAI_MAX_TOOL_ROUNDS" default:"3"`
}

// TelephonyConfig holds telephony provider configuration
type TelephonyConfig struct {
	Domain          string `envconfig:"TELEPHONY_DOMAIN" default:"localhost:8080"`
	WelcomeGreeting string `envconfig:"TELEPHONY_WELCOME_GREETING" default:"Hi! Ask me anything about hospitals or book an appointment."`
	TTSProvider     string `envconfig:"TELEPHONY_TTS_PROVIDER" default:"ElevenLabs"`
	Voice           string `envconfig:"TELEPHONY_VOICE" default:"ZF6FPAbjXT4488VcRRnw"`
	WebhookSecret   string `envconfig:"TELEPHONY_WEBHOOK_SECRET" default:""`
}

// StorageConfig holds recording storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"call-recordings"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
}

// TranscriptionConfig holds AssemblyAI configuration
type TranscriptionConfig struct {
	APIKey  string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	Enabled bool   `envconfig:"TRANSCRIPTION_ENABLED" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required in production")
	}
	if c.Transcription.Enabled && c.Transcription.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required when transcription is enabled")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
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

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
