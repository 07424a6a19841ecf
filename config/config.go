package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultSessionTTL    = 7 * 24 * time.Hour
	defaultSweepInterval = time.Hour
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// Identity provider
	OAuthClientID     string
	OAuthClientSecret string
	OAuthAuthURL      string
	OAuthTokenURL     string
	OAuthUserInfoURL  string
	OAuthRedirectURL  string
	WebhookSecret     string

	// Object storage
	S3Bucket    string
	AWSRegion   string
	S3PublicURL string
	S3Endpoint  string

	FrontendURL   string
	CORSOrigins   []string
	SweepInterval time.Duration
	LogLevel      string
}

// DatabaseDSN builds the lib/pq connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL is the same connection as a postgres:// URL, as golang-migrate wants it.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// ServerAddr is host:port for the HTTP listener.
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisAddr is host:port, used when no REDIS_URL is given.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// CookieSecure reports whether session cookies need the Secure flag.
func (c *Config) CookieSecure() bool {
	return strings.HasPrefix(c.FrontendURL, "https://")
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env != Production {
		// a missing .env is normal; the process environment still applies
		_ = godotenv.Load()
	}

	cfg := fromEnv()
	cfg.Env = env

	// Sensitive values come from docker secrets outside CI when present.
	if env != CI {
		applySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "adhub"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: getDuration("SESSION_TTL", defaultSessionTTL),

		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthAuthURL:      os.Getenv("OAUTH_AUTH_URL"),
		OAuthTokenURL:     os.Getenv("OAUTH_TOKEN_URL"),
		OAuthUserInfoURL:  os.Getenv("OAUTH_USERINFO_URL"),
		OAuthRedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),

		S3Bucket:    getEnv("S3_BUCKET_NAME", "adhub-profile-photos"),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),

		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SweepInterval: getDuration("SWEEP_INTERVAL", defaultSweepInterval),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// applySecrets overrides sensitive values with docker secrets that exist.
func applySecrets(cfg *Config) {
	for name, field := range map[string]*string{
		"db_user":             &cfg.DBUser,
		"db_password":         &cfg.DBPassword,
		"redis_password":      &cfg.RedisPassword,
		"redis_url":           &cfg.RedisURL,
		"jwt_secret":          &cfg.JWTSecret,
		"oauth_client_secret": &cfg.OAuthClientSecret,
		"webhook_secret":      &cfg.WebhookSecret,
	} {
		if value := readSecret(name); value != "" {
			*field = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
