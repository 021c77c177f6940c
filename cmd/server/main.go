package main

import (
	"context" // context package is needed for Redis operations

	"paper_trader/internal/api"        // HTTP handlers
	"paper_trader/internal/auth"       // Registration and login
	"paper_trader/internal/config"     // Configuration
	"paper_trader/internal/db"         // Database connection and migrations
	"paper_trader/internal/ledger"     // Users and transactions store
	"paper_trader/internal/middleware" // Session and request middleware
	"paper_trader/internal/portfolio"  // Holdings and history
	"paper_trader/internal/quote"      // Stock quote providers
	"paper_trader/internal/trade"      // Buy and sell

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database and bring the schema up to date
	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Setup quote provider, cached in Redis when configured
	var quotes quote.Provider = quote.NewHTTPProvider(cfg.QuoteAPIURL, cfg.QuoteAPIKey)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		quotes = quote.NewCachedProvider(quotes, redisClient, cfg.QuoteCacheTTL)
	} else {
		logrus.Warn("REDIS_ADDR not set, quotes are not cached")
	}

	store := ledger.NewStore(database)
	handler := api.NewHandler(
		auth.NewEngine(store, cfg.StartingCash),
		trade.NewEngine(store, quotes),
		portfolio.NewEngine(store, quotes),
		&middleware.Session{Secret: cfg.JWTSecret, TTL: cfg.SessionTTL, Secure: cfg.IsProd},
	)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.Use(middleware.RequestID())
	if !cfg.IsProd {
		r.Use(middleware.NoCache())
	}
	handler.Routes(r)

	logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {  // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
