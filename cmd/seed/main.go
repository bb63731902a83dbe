package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/fleetops/driver-service/internal/config"
	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/internal/repository/postgres"
	"github.com/fleetops/driver-service/internal/seed"
	"github.com/fleetops/driver-service/internal/service/trend"
	"github.com/fleetops/driver-service/pkg/cache"
	"github.com/fleetops/driver-service/pkg/database"
	"github.com/fleetops/driver-service/pkg/logger"
)

func main() {
	driversFile := flag.String("drivers", "sample_driver_records.json", "path to the driver records")
	formsFile := flag.String("forms", "sample_form_records.json", "path to the form records")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall seeding timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	gormDB, sqlDB, err := database.NewGormDB(database.Config{
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		User:          cfg.Database.User,
		Password:      cfg.Database.Password,
		DBName:        cfg.Database.Name,
		SSLMode:       cfg.Database.SSLMode,
		MaxConns:      5,
		MaxIdle:       1,
		SlowThreshold: cfg.Database.SlowThreshold,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer sqlDB.Close()

	formRepo := postgres.NewFormRepository(gormDB)

	// Forms added here must not hide behind trends the API already cached.
	var invalidator form.TrendInvalidator
	if cfg.Features.EnableTrendCache {
		redisClient, err := cache.NewRedisClient(cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    2,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)
		invalidator = trend.NewAggregator(formRepo, redisClient, cfg.Cache.TTLTrends, nil, appLogger)
	}

	seeder := seed.New(
		driver.NewService(postgres.NewDriverRepository(gormDB), nil, nil, appLogger),
		form.NewService(formRepo, invalidator, nil, appLogger),
		appLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var summary seed.Summary
	if err := seedFile(ctx, *driversFile, &summary, seeder.SeedDrivers); err != nil {
		appLogger.Error("Driver seeding failed", logger.String("file", *driversFile), logger.Err(err))
	}
	if err := seedFile(ctx, *formsFile, &summary, seeder.SeedForms); err != nil {
		appLogger.Error("Form seeding failed", logger.String("file", *formsFile), logger.Err(err))
	}

	appLogger.Info("Seeding complete",
		logger.Int("drivers_added", summary.DriversAdded),
		logger.Int("drivers_skipped", summary.DriversSkipped),
		logger.Int("drivers_failed", summary.DriversFailed),
		logger.Int("forms_added", summary.FormsAdded),
		logger.Int("forms_skipped", summary.FormsSkipped),
		logger.Int("forms_failed", summary.FormsFailed),
	)
}

type seedFunc func(ctx context.Context, r io.Reader, summary *seed.Summary) error

func seedFile(ctx context.Context, path string, summary *seed.Summary, fn seedFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(ctx, f, summary)
}
