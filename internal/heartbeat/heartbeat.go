// Package heartbeat periodically reports that the service is alive along with
// its connection pool usage.
package heartbeat

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fleetops/driver-service/pkg/cache"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/monitoring"
)

// DBStatser exposes connection pool statistics
type DBStatser interface {
	Stats() sql.DBStats
}

// Heartbeat logs a liveness line on every tick
type Heartbeat struct {
	interval time.Duration
	db       DBStatser
	redis    *redis.Client
	monitor  *monitoring.NewRelicApp
	logger   *logger.Logger
	beats    atomic.Int64
}

// New creates a heartbeat. db, redis and monitor may be nil.
func New(interval time.Duration, db DBStatser, redis *redis.Client, monitor *monitoring.NewRelicApp, logger *logger.Logger) *Heartbeat {
	return &Heartbeat{
		interval: interval,
		db:       db,
		redis:    redis,
		monitor:  monitor,
		logger:   logger,
	}
}

// Beats returns the number of completed beats
func (h *Heartbeat) Beats() int64 {
	return h.beats.Load()
}

// Run beats until ctx is cancelled
func (h *Heartbeat) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Heartbeat stopped", logger.Int64("beats", h.beats.Load()))
			return
		case <-ticker.C:
			h.beat()
		}
	}
}

func (h *Heartbeat) beat() {
	fields := []zap.Field{logger.Int64("beat", h.beats.Add(1))}

	if h.db != nil {
		stats := h.db.Stats()
		fields = append(fields,
			logger.Int("db_open", stats.OpenConnections),
			logger.Int("db_in_use", stats.InUse),
			logger.Int("db_idle", stats.Idle),
		)
		h.monitor.RecordDatabasePoolStats(stats.OpenConnections, stats.InUse, stats.Idle)
	}
	if h.redis != nil {
		stats := cache.GetClientStats(h.redis)
		fields = append(fields, logger.Any("redis_pool", stats))
		h.monitor.RecordRedisPoolStats(stats)
	}

	h.logger.Info("Driver service is alive and running", fields...)
}
