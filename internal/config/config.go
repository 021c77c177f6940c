package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv"     // For loading .env files
	"github.com/shopspring/decimal" // Starting cash allowance
)

// Config holds the application configuration
type Config struct {
	AppPort       string          // Application port
	DBDriver      string          // mysql, postgres or sqlite
	DBUser        string          // Database user
	DBPassword    string          // Database password
	DBHost        string          // Database host
	DBPort        string          // Database port
	DBName        string          // Database name (file path for sqlite)
	JWTSecret     string          // Session token signing key
	SessionTTL    time.Duration   // Session lifetime
	RedisAddr     string          // Redis server address, empty disables the quote cache
	RedisPass     string          // Redis password
	RedisDB       int             // Redis database number
	QuoteAPIURL   string          // Quote service base URL
	QuoteAPIKey   string          // Quote service token
	QuoteCacheTTL time.Duration   // How long a quote stays cached
	StartingCash  decimal.Decimal // Cash granted on registration
	LogLevel      string          // logrus level name
	IsProd        bool            // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        getEnv("DB_NAME", "finance.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       redisDB,
		QuoteAPIURL:   getEnv("QUOTE_API_URL", "https://cloud.iexapis.com/stable"),
		QuoteAPIKey:   os.Getenv("QUOTE_API_KEY"),
		QuoteCacheTTL: getDuration("QUOTE_CACHE_TTL", 60*time.Second),
		StartingCash:  getDecimal("STARTING_CASH", decimal.NewFromInt(10000)),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		IsProd:        os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// getEnv returns the variable or def when unset
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getDecimal(key string, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(os.Getenv(key))
	if err != nil || d.IsNegative() {
		return def
	}
	return d
}
