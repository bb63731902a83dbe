package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/fleetops/driver-service/internal/api/handlers"
	"github.com/fleetops/driver-service/internal/api/routes"
	"github.com/fleetops/driver-service/internal/config"
	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/internal/domain/schedule"
	"github.com/fleetops/driver-service/internal/events"
	"github.com/fleetops/driver-service/internal/heartbeat"
	"github.com/fleetops/driver-service/internal/repository/postgres"
	"github.com/fleetops/driver-service/internal/service/conflict"
	"github.com/fleetops/driver-service/internal/service/trend"
	"github.com/fleetops/driver-service/pkg/cache"
	"github.com/fleetops/driver-service/pkg/database"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/messaging"
	"github.com/fleetops/driver-service/pkg/monitoring"
	"github.com/fleetops/driver-service/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting FleetOps Driver Service",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
		LogLevel:   cfg.NewRelic.LogLevel,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = monitoring.Disabled()
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized successfully",
			logger.String("app_name", cfg.NewRelic.AppName),
			logger.Bool("enabled", true))
	} else {
		appLogger.Info("New Relic APM disabled")
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Initialize PostgreSQL
	gormDB, sqlDB, err := database.NewGormDB(database.Config{
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		User:          cfg.Database.User,
		Password:      cfg.Database.Password,
		DBName:        cfg.Database.Name,
		SSLMode:       cfg.Database.SSLMode,
		MaxConns:      cfg.Database.MaxConnections,
		MaxIdle:       cfg.Database.MaxIdleConns,
		MaxLifetime:   cfg.Database.MaxLifetime,
		SlowThreshold: cfg.Database.SlowThreshold,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer sqlDB.Close()

	appLogger.Info("Connected to PostgreSQL successfully")

	// Initialize Redis
	var redisClient *redis.Client
	if cfg.Features.EnableTrendCache {
		redisClient, err = cache.NewRedisClient(cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			MinIdleConn: cfg.Redis.MinIdleConn,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)

		appLogger.Info("Connected to Redis successfully")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Event sinks
	var sinks []events.Sink
	var wsHub *websocket.Hub
	var broker *messaging.Broker
	if cfg.Features.EnableRealTimeUpdates {
		wsHub = websocket.NewHub(appLogger)
		go wsHub.Run(ctx)
		sinks = append(sinks, events.NewHubSink(wsHub))
	}
	if cfg.Features.EnableEventBroker {
		broker, err = messaging.NewBroker(messaging.Config{
			Host:     cfg.RabbitMQ.Host,
			Port:     cfg.RabbitMQ.Port,
			User:     cfg.RabbitMQ.User,
			Password: cfg.RabbitMQ.Password,
			VHost:    cfg.RabbitMQ.VHost,
			Exchange: cfg.RabbitMQ.Exchange,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to RabbitMQ", logger.Err(err))
		}
		defer broker.Close()
		sinks = append(sinks, events.NewBrokerSink(broker))

		appLogger.Info("Connected to RabbitMQ successfully",
			logger.String("exchange", cfg.RabbitMQ.Exchange))
	}
	publisher := events.NewFanout(appLogger, sinks...)

	// Repositories and services
	driverRepo := postgres.NewDriverRepository(gormDB)
	scheduleRepo := postgres.NewScheduleRepository(gormDB)
	formRepo := postgres.NewFormRepository(gormDB)

	trends := trend.NewAggregator(formRepo, redisClient, cfg.Cache.TTLTrends, nrApp, appLogger)

	h := handlers.NewHandlers(
		driver.NewService(driverRepo, publisher, nrApp, appLogger),
		schedule.NewService(scheduleRepo, publisher, appLogger),
		form.NewService(formRepo, trends, publisher, appLogger),
		conflict.NewChecker(scheduleRepo, nrApp, appLogger),
		trends,
		sqlDB,
		wsHub,
		appLogger,
		cfg.WebSocket.ReadBufferSize,
		cfg.WebSocket.WriteBufferSize,
	)

	if broker != nil {
		h.Broker = broker
	}

	go heartbeat.New(cfg.Heartbeat.Interval, sqlDB, redisClient, nrApp, appLogger).Run(ctx)

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	var nrApplication *newrelic.Application
	if nrApp.IsEnabled() {
		nrApplication = nrApp.Application
	}
	routes.SetupRoutes(router, h, appLogger, nrApplication)

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}
	stop()

	appLogger.Info("Server stopped gracefully")
}
