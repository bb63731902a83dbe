package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
	LogLevel   string
}

// NewRelicApp wraps the New Relic application. A nil or disabled app is safe
// to call; every recorder becomes a no-op.
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return Disabled(), nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigDistributedTracerEnabled(true),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// Disabled returns an app that records nothing.
func Disabled() *NewRelicApp {
	return &NewRelicApp{nil, false}
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.IsEnabled() {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// RecordCustomMetric records a custom metric
func (nr *NewRelicApp) RecordCustomMetric(name string, value float64) {
	if !nr.IsEnabled() {
		return
	}
	nr.Application.RecordCustomMetric(name, value)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.IsEnabled() {
		return
	}
	nr.Application.Shutdown(timeout)
}

// Custom metric helpers

// RecordConflictCheck records a schedule conflict lookup and how many
// schedules it reported.
func (nr *NewRelicApp) RecordConflictCheck(driverID int64, conflicts int) {
	nr.RecordCustomMetric("custom/schedule/conflicts_found", float64(conflicts))
	nr.RecordCustomEvent("ScheduleConflictCheck", map[string]interface{}{
		"driver_id": driverID,
		"conflicts": conflicts,
	})
}

// RecordTrendComputed records the number of forms a trend was computed over.
func (nr *NewRelicApp) RecordTrendComputed(forms int, cached bool) {
	nr.RecordCustomMetric("custom/form/trend_forms", float64(forms))
	if cached {
		nr.RecordCustomMetric("custom/form/trend_cache_hit", 1)
	}
}

// RecordDriverCreated records driver registration
func (nr *NewRelicApp) RecordDriverCreated(driverID int64) {
	nr.RecordCustomEvent("DriverCreated", map[string]interface{}{
		"driver_id": driverID,
		"timestamp": time.Now().Unix(),
	})
}

// RecordDatabasePoolStats records database connection pool statistics
func (nr *NewRelicApp) RecordDatabasePoolStats(open, inUse, idle int) {
	nr.RecordCustomMetric("custom/db/open_connections", float64(open))
	nr.RecordCustomMetric("custom/db/in_use_connections", float64(inUse))
	nr.RecordCustomMetric("custom/db/idle_connections", float64(idle))
}

// RecordRedisPoolStats records Redis pool statistics
func (nr *NewRelicApp) RecordRedisPoolStats(stats map[string]interface{}) {
	if hits, ok := stats["hits"].(uint32); ok {
		nr.RecordCustomMetric("custom/redis/cache_hits", float64(hits))
	}
	if misses, ok := stats["misses"].(uint32); ok {
		nr.RecordCustomMetric("custom/redis/cache_misses", float64(misses))
	}
	if timeouts, ok := stats["timeouts"].(uint32); ok {
		nr.RecordCustomMetric("custom/redis/timeouts", float64(timeouts))
	}
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr != nil && nr.enabled && nr.Application != nil
}
