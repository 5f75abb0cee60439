package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	SecretKey      string
	Algorithm      string
	AccessTokenTTL time.Duration
	Environment    string
	Debug          bool
	AllowedOrigins []string
	GeminiAPIKey   string
	ServerPort     string
	RedisURL       string

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
	RateLimitBlockTime   time.Duration
}

// Load reads the process configuration once at startup. The returned value
// is treated as immutable and handed to every component that needs it.
func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (containers use environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		Algorithm:      getEnv("ALGORITHM", "HS256"),
		AccessTokenTTL: time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		Environment:    getEnv("ENVIRONMENT", "development"),
		Debug:          getEnvAsBool("DEBUG", false),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "https://sitecel.cl,https://www.sitecel.cl")),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ServerPort:     getEnv("SERVER_PORT", ":8000"),
		RedisURL:       os.Getenv("REDIS_URL"),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		RateLimitBlockTime:   getEnvAsDuration("RATE_LIMIT_BLOCK_TIME", "5m"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY is required")
	}

	return cfg
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsBool retrieves environment variable as bool with default value
func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %t", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
