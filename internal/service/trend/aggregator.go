package trend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/pkg/cache"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/monitoring"
)

// FormFetcher loads a driver's forms
type FormFetcher interface {
	FindByDriverID(ctx context.Context, driverID int64) ([]form.Form, error)
}

// Aggregator computes driver trends with an optional Redis read-through cache
type Aggregator struct {
	forms   FormFetcher
	redis   *redis.Client
	ttl     time.Duration
	monitor *monitoring.NewRelicApp
	logger  *logger.Logger
}

// NewAggregator creates a new trend aggregator. A nil redis client disables
// caching; monitor may be nil.
func NewAggregator(forms FormFetcher, redis *redis.Client, ttl time.Duration, monitor *monitoring.NewRelicApp, logger *logger.Logger) *Aggregator {
	return &Aggregator{
		forms:   forms,
		redis:   redis,
		ttl:     ttl,
		monitor: monitor,
		logger:  logger,
	}
}

func cacheKey(driverID int64) string {
	return fmt.Sprintf("trends:driver:%d", driverID)
}

// generationKey counts invalidations of a driver's trends. A trend computed
// from forms read before an invalidation is never cached.
func generationKey(driverID int64) string {
	return cacheKey(driverID) + ":gen"
}

// ComputeTrends returns the trend over a driver's forms. limit <= 0 means all
// forms.
func (a *Aggregator) ComputeTrends(ctx context.Context, driverID int64, limit int) (Trend, error) {
	if driverID == 0 {
		return Empty(), nil
	}
	if limit < 0 {
		limit = 0
	}

	key := cacheKey(driverID)
	field := strconv.Itoa(limit)

	var gen int64
	cacheable := false
	if a.redis != nil {
		var cached Trend
		found, err := cache.GetHashJSON(ctx, a.redis, key, field, &cached)
		if err != nil {
			a.logger.Warn("Trend cache read failed",
				logger.Int64("driver_id", driverID),
				logger.Err(err),
			)
		} else if found {
			a.record(cached.TotalForms, true)
			return cached, nil
		} else if gen, err = cache.Generation(ctx, a.redis, generationKey(driverID)); err == nil {
			cacheable = true
		}
	}

	forms, err := a.forms.FindByDriverID(ctx, driverID)
	if err != nil {
		return Trend{}, err
	}
	t := Compute(forms, limit)

	a.logger.Info("Trend computed",
		logger.Int64("driver_id", driverID),
		logger.Int("limit", limit),
		logger.Int("total_forms", t.TotalForms),
	)
	a.record(t.TotalForms, false)

	if cacheable {
		err := cache.SetHashJSONAt(ctx, a.redis, generationKey(driverID), gen, key, field, t, a.ttl)
		switch {
		case errors.Is(err, cache.ErrStale):
			a.logger.Debug("Forms changed while computing trend, result not cached",
				logger.Int64("driver_id", driverID),
			)
		case err != nil:
			a.logger.Warn("Trend cache write failed",
				logger.Int64("driver_id", driverID),
				logger.Err(err),
			)
		}
	}
	return t, nil
}

// Invalidate drops every cached trend for the given drivers and stops
// in-flight computations from caching what they read before the call.
func (a *Aggregator) Invalidate(ctx context.Context, driverIDs ...int64) {
	if a.redis == nil || len(driverIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(driverIDs))
	gens := make([]string, 0, len(driverIDs))
	for _, id := range driverIDs {
		keys = append(keys, cacheKey(id))
		gens = append(gens, generationKey(id))
	}
	if err := cache.Bump(ctx, a.redis, gens, keys...); err != nil {
		a.logger.Warn("Trend cache invalidation failed",
			logger.Any("driver_ids", driverIDs),
			logger.Err(err),
		)
	}
}

func (a *Aggregator) record(forms int, cached bool) {
	if a.monitor.IsEnabled() {
		a.monitor.RecordTrendComputed(forms, cached)
	}
}
