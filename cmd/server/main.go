package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/cart"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/catalog"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/checkout"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/contact"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/events"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/httpapi"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/orders"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/pricing"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/session"
)

type Config struct {
	HTTPPort          string
	MongoURI          string
	MongoDBName       string
	RedisAddr         string
	RedisPassword     string
	OrderServiceURL   string
	CatalogServiceURL string
	ContactServiceURL string
	KafkaBrokers      []string
	ShippingFee       int64
	Postgres          orders.Credentials
}

func loadConfig() Config {
	return Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB_NAME", "lazermarkaz"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		OrderServiceURL:   getEnv("ORDER_SERVICE_URL", "http://localhost:8081"),
		CatalogServiceURL: getEnv("CATALOG_SERVICE_URL", "http://localhost:8082"),
		ContactServiceURL: getEnv("CONTACT_SERVICE_URL", "http://localhost:8083"),
		KafkaBrokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		ShippingFee:       getEnvInt64("SHIPPING_FEE", pricing.DefaultShippingFee),
		Postgres: orders.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "lazermarkaz"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Set up MongoDB connection for session cart persistence
	mongoDB, err := session.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	repo := session.NewMongoRepository(mongoDB)
	if err := repo.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create MongoDB indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	sessions := session.NewManager(repo, session.NewRedisCache(redisClient))

	// Confirmed orders archive
	confirmations, err := orders.NewPostgresStore(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer confirmations.Close()
	if err := confirmations.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Postgres connected, migrations applied")

	publisher := events.NewPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	catalogClient := catalog.NewClient(cfg.CatalogServiceURL, 5*time.Second)
	orderClient := orders.NewClient(cfg.OrderServiceURL, 15*time.Second)
	contactClient := contact.NewClient(cfg.ContactServiceURL, 5*time.Second)

	coordinator := checkout.NewCoordinator(checkout.Deps{
		Submitter: orderClient,
		Pricing:   pricing.NewEngine(cfg.ShippingFee),
		Archive:   confirmations,
		Events:    publisher,
		Timeout:   15 * time.Second,
	}, func(ctx context.Context, sessionID string) error {
		_, err := sessions.WithCart(ctx, sessionID, func(s *cart.Store) { s.Clear() })
		return err
	})

	router := httpapi.NewRouter(
		httpapi.RouterConfig{RequestTimeout: 30 * time.Second},
		httpapi.NewCartHandler(sessions, catalogClient, 5*time.Second),
		httpapi.NewCheckoutHandler(sessions, coordinator, catalogClient, confirmations, 20*time.Second),
		httpapi.NewCatalogHandler(catalogClient, catalogClient, 5*time.Second),
		httpapi.NewContactHandler(contactClient, 5*time.Second),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Storefront API listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down storefront API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	mongoDB.Client().Disconnect(ctx)
	log.Println("Storefront API stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
