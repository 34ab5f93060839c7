package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/germanaqua/Psychovoystore/internal/cart"
	"github.com/germanaqua/Psychovoystore/internal/catalog"
	h "github.com/germanaqua/Psychovoystore/internal/http"
)

type Config struct {
	HTTPPort        string
	CatalogAPIURL   string
	TelegramHandle  string
	CartDBPath      string
	MigrationsPath  string
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogAPIURL:   getEnv("CATALOG_API_URL", "http://localhost:8000"),
		TelegramHandle:  getEnv("TELEGRAM_HANDLE", "brokenpsychoo"),
		CartDBPath:      getEnv("CART_DB_PATH", "./carts.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/cart/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Durable cart storage
	repo, err := cart.NewSQLiteRepository(cfg.CartDBPath)
	if err != nil {
		logger.Fatal("failed to open cart storage", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("cart storage ready", zap.String("path", cfg.CartDBPath))

	cartService := cart.NewService(repo, logger)

	// Catalog snapshot cache is optional
	var productCache catalog.ProductCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		productCache = catalog.NewRedisCache(redisClient)
		logger.Info("catalog cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	client := catalog.NewClient(cfg.CatalogAPIURL, cfg.RequestTimeout)
	store := catalog.NewStore(client, productCache, logger)

	// One catalog fetch per process start, no retry. A failed load leaves
	// the catalog empty and the storefront interactive.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := store.Load(loadCtx); err != nil {
		logger.Warn("failed to load products, starting with empty catalog", zap.Error(err))
	}
	cancelLoad()

	cartHandler := h.NewCartHandler(cartService, store, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(store)
	checkoutHandler := h.NewCheckoutHandler(cartService, cfg.TelegramHandle, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.Get)
		r.Get("/products/{product_id}", productHandler.GetByID)
		r.Get("/categories", productHandler.GetCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.Checkout)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
