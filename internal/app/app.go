// Package app wires together all dependencies and runs the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/utafrali/glamstore/internal/config"
	handler "github.com/utafrali/glamstore/internal/handler/http"
	mongorepo "github.com/utafrali/glamstore/internal/repository/mongo"
	"github.com/utafrali/glamstore/internal/seed"
	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/session"
	sessionredis "github.com/utafrali/glamstore/internal/session/redis"
	"github.com/utafrali/glamstore/internal/storage/local"
	"github.com/utafrali/glamstore/pkg/health"
	"github.com/utafrali/glamstore/pkg/middleware"
)

// App holds the application's long-lived resources.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	mongoClient *mongo.Client
	rdb         *redis.Client
	httpServer  *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := mongorepo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to MongoDB",
		slog.String("database", cfg.MongoDatabase),
	)

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	images, err := local.New(cfg.UploadDir, "/uploads", logger)
	if err != nil {
		return nil, err
	}

	// Repositories and session store.
	productRepo := mongorepo.NewProductRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := sessionredis.NewStore(rdb, sessionTTL)
	tokens := session.NewTokenManager(cfg.SessionSecret, sessionTTL, cfg.IsProduction())

	// Services.
	authService := service.NewAuthService(userRepo, sessions, logger)
	catalogService := service.NewCatalogService(productRepo, images, logger)
	cartService := service.NewCartService(productRepo, sessions, logger)
	checkoutService := service.NewCheckoutService(orderRepo, sessions, logger)

	if cfg.SeedCatalog {
		if err := seed.Run(ctx, productRepo, logger); err != nil {
			return nil, err
		}
	}

	// Health checks.
	healthHandler := health.NewHandler("glamstore",
		health.CheckerFunc{
			CheckerName: "mongodb",
			CheckFn: func(ctx context.Context) error {
				return mongoClient.Ping(ctx, nil)
			},
		},
		health.CheckerFunc{
			CheckerName: "redis",
			CheckFn: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
	)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSOrigins

	router := handler.NewRouter(handler.RouterDeps{
		AuthService:     authService,
		CatalogService:  catalogService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		SessionStore:    sessions,
		Tokens:          tokens,
		Images:          images,
		HealthHandler:   healthHandler,
		Logger:          logger,
		UploadDir:       cfg.UploadDir,
		CORS:            corsConfig,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:         cfg,
		logger:      logger,
		mongoClient: mongoClient,
		rdb:         rdb,
		httpServer:  httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
	}

	a.logger.Info("shutdown complete")
	return nil
}
