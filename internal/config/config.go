package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Shift        ShiftConfig
	OAuth2Google OAuth2GoogleConfig
	SMTP         SMTPConfig
	AMQP         AMQPConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	Storage      StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// ShiftConfig holds the clock window buffers. Clock-in opens
// EarlyClockInBuffer before a shift starts; clock-out opens
// MinimumClockOutBuffer before it finishes.
type ShiftConfig struct {
	EarlyClockInBuffer    time.Duration
	MinimumClockOutBuffer time.Duration
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// SMTPConfig holds outgoing mail configuration. Leaving Host empty
// disables shift notification emails.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// AMQPConfig holds the message broker configuration. Leaving URL empty
// disables shift lifecycle event publishing.
type AMQPConfig struct {
	URL   string
	Queue string
}

// RedisConfig holds the Redis configuration used for rate limiting.
// Leaving Addr empty disables rate limiting.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig tunes the token bucket guarding the login and clock
// endpoints. Each bucket holds Capacity tokens and regains RefillTokens
// every RefillInterval.
type RateLimitConfig struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// StorageConfig holds the directory where generated rota exports are written.
type StorageConfig struct {
	Dir string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "rota"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Shift clock window configuration
	earlyBuffer, err := strconv.Atoi(getEnv("EARLY_CLOCK_IN_BUFFER_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_CLOCK_IN_BUFFER_MINUTES: %w", err)
	}
	clockOutBuffer, err := strconv.Atoi(getEnv("MINIMUM_CLOCK_OUT_BUFFER_MINUTES", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid MINIMUM_CLOCK_OUT_BUFFER_MINUTES: %w", err)
	}

	config.Shift = ShiftConfig{
		EarlyClockInBuffer:    time.Duration(earlyBuffer) * time.Minute,
		MinimumClockOutBuffer: time.Duration(clockOutBuffer) * time.Minute,
	}

	// JWT configuration
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Rota"),
	}

	// Message broker configuration
	config.AMQP = AMQPConfig{
		URL:   getEnv("AMQP_URL", ""),
		Queue: getEnv("AMQP_QUEUE", "shift_events"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Rate limit configuration
	rateLimitCapacity, err := strconv.Atoi(getEnv("RATE_LIMIT_CAPACITY", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CAPACITY: %w", err)
	}
	rateLimitRefillTokens, err := strconv.Atoi(getEnv("RATE_LIMIT_REFILL_TOKENS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_TOKENS: %w", err)
	}
	rateLimitRefillInterval, err := time.ParseDuration(getEnv("RATE_LIMIT_REFILL_INTERVAL", "6s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_INTERVAL: %w", err)
	}
	rateLimitTTL, err := time.ParseDuration(getEnv("RATE_LIMIT_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_TTL: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		Capacity:       rateLimitCapacity,
		RefillTokens:   rateLimitRefillTokens,
		RefillInterval: rateLimitRefillInterval,
		TTL:            rateLimitTTL,
		Prefix:         getEnv("RATE_LIMIT_PREFIX", "ratelimit"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Dir: getEnv("STORAGE_DIR", "storage"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Shift.EarlyClockInBuffer < 0 {
		return fmt.Errorf("EARLY_CLOCK_IN_BUFFER_MINUTES must not be negative")
	}
	if c.Shift.MinimumClockOutBuffer < 0 {
		return fmt.Errorf("MINIMUM_CLOCK_OUT_BUFFER_MINUTES must not be negative")
	}
	if c.OAuth2Google.ClientID == "" {
		return fmt.Errorf("CLIENT_ID is required")
	}
	if c.OAuth2Google.ClientSecret == "" {
		return fmt.Errorf("CLIENT_SECRET is required")
	}
	if c.OAuth2Google.RedirectURL == "" {
		return fmt.Errorf("REDIRECT_URL is required")
	}
	if len(c.OAuth2Google.Scopes) == 0 {
		return fmt.Errorf("SCOPES is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
