package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/api/routes"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/cache"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/config"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/events"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/handlers"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/logging"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/metrics"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories/memory"
	mongorepo "github.com/egysaas25-hub/fit-coach-sub001/internal/repositories/mongodb"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories/sqldb"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/services"
	"github.com/egysaas25-hub/fit-coach-sub001/pkg/jwt"
	"github.com/egysaas25-hub/fit-coach-sub001/pkg/mongodb"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

type storage struct {
	settings repositories.SettingsRepository
	admins   repositories.AdminUserRepository
	close    func(context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, settings are lost on restart")
		return &storage{
			settings: memory.NewSettingsRepository(),
			admins:   memory.NewAdminUserRepository(),
			close:    func(context.Context) error { return nil },
		}, nil
	case config.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB.Database)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB.Database))
		return &storage{
			settings: mongorepo.NewSettingsRepository(db),
			admins:   mongorepo.NewAdminUserRepository(db),
			close:    client.Disconnect,
		}, nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := sqldb.Open(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to SQL storage", zap.String("dialect", cfg.Storage.Driver))
		return &storage{
			settings: sqldb.NewSettingsRepository(db),
			admins:   sqldb.NewAdminUserRepository(db),
			close:    func(context.Context) error { return sqldb.Close(db) },
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openCache returns the settings cache and a func releasing it
func openCache(cfg *config.Config, logger *zap.Logger) (cache.Cache[models.CachedSettings], func(), error) {
	if cfg.Settings.CacheDriver == config.CacheRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("using redis settings cache", zap.String("addr", cfg.Redis.Addr))
		return cache.NewRedis[models.CachedSettings](client, "fitcoach:settings:", logger.Named("cache")),
			func() { _ = client.Close() }, nil
	}
	c := cache.NewMemory[models.CachedSettings]()
	return c, c.Close, nil
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			logger.Error("error disconnecting storage", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	settingsCache, closeCache, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	tokens, err := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	if err != nil {
		return err
	}

	settingsService := services.NewSettingsService(
		store.settings,
		settingsCache,
		cfg.Settings.CacheTTL,
		metrics.NewSettingsMetrics(registry),
		logger.Named("settings"),
	)
	if cfg.Events.AMQPURL != "" {
		publisher, err := events.DialAMQP(cfg.Events.AMQPURL)
		if err != nil {
			return err
		}
		defer func() { _ = publisher.Close() }()
		settingsService.SetPublisher(publisher)
		logger.Info("publishing settings events", zap.String("exchange", events.ExchangeName))
	}
	authService := services.NewAuthService(store.admins, tokens, logger.Named("auth"))

	router := routes.SetupRouter(routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService, logger),
		SettingsHandler: handlers.NewSettingsHandler(settingsService, logger),
		Tokens:          tokens,
		Logger:          logger,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exiting")
	return nil
}
