package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env" validate:"oneof=development staging production test"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`

	// Cache configuration
	CacheEnabled bool          `json:"cache_enabled"`
	RedisURL     string        `json:"redis_url" validate:"required_if=CacheEnabled true"`
	RedisPrefix  string        `json:"redis_prefix" validate:"required_if=CacheEnabled true,excludesall=*?[]"`
	CacheTTL     time.Duration `json:"cache_ttl" validate:"gt=0"`

	// CMS configuration
	SanityProjectID  string        `json:"sanity_project_id"`
	SanityDataset    string        `json:"sanity_dataset" validate:"required_with=SanityProjectID"`
	SanityAPIVersion string        `json:"sanity_api_version"`
	SanityToken      string        `json:"-"`
	SanityUseCDN     bool          `json:"sanity_use_cdn"`
	CMSTimeout       time.Duration `json:"cms_timeout" validate:"gt=0"`

	// CloudFlare R2 Configuration
	R2Endpoint   string        `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey  string        `json:"-"`
	R2SecretKey  string        `json:"-"`
	R2Bucket     string        `json:"r2_bucket"`
	R2AccountID  string        `json:"r2_account_id"`
	R2PresignTTL time.Duration `json:"r2_presign_ttl" validate:"gte=0"`

	// Content
	FallbackPath string `json:"fallback_path"`

	// Logging
	LogLevel string `json:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey   string `json:"-"`
	WebhookSecret string `json:"-"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv reads the configuration from the environment without validating it.
func FromEnv() *Config {
	return &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Cache configuration
		CacheEnabled: getEnvAsBool("CACHE_ENABLED", true),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "resources:"),
		CacheTTL:     getEnvAsDuration("CACHE_TTL", 10*time.Minute),

		// CMS configuration
		SanityProjectID:  getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:    getEnv("SANITY_DATASET", "production"),
		SanityAPIVersion: getEnv("SANITY_API_VERSION", "2023-10-01"),
		SanityToken:      getEnv("SANITY_API_TOKEN", ""),
		SanityUseCDN:     getEnvAsBool("SANITY_USE_CDN", true),
		CMSTimeout:       getEnvAsDuration("CMS_TIMEOUT", 10*time.Second),

		// CloudFlare R2 Configuration
		R2Endpoint:   getEnv("R2_ENDPOINT", ""),
		R2AccessKey:  getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:     getEnv("R2_BUCKET", "resources"),
		R2AccountID:  getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		R2PresignTTL: getEnvAsDuration("R2_PRESIGN_TTL", time.Hour),

		// Content
		FallbackPath: getEnv("FALLBACK_PATH", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey:   getEnv("ADMIN_API_KEY", ""),
		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	// Cached resources embed presigned image URLs, so they must expire first.
	if c.CacheEnabled && c.R2Enabled() && c.CacheTTL > c.r2URLTTL() {
		return fmt.Errorf("config validation failed: CACHE_TTL (%v) exceeds R2_PRESIGN_TTL (%v)", c.CacheTTL, c.r2URLTTL())
	}
	return nil
}

// r2URLTTL is the lifetime of presigned R2 URLs; zero falls back to one hour.
func (c *Config) r2URLTTL() time.Duration {
	if c.R2PresignTTL <= 0 {
		return time.Hour
	}
	return c.R2PresignTTL
}

// CMSEnabled reports whether a CMS project is configured.
func (c *Config) CMSEnabled() bool {
	return c.SanityProjectID != ""
}

// R2Enabled reports whether R2 credentials are configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccessKey != "" && c.R2SecretKey != "" && (c.R2Endpoint != "" || c.R2AccountID != "")
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
