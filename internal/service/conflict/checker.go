package conflict

import (
	"context"
	"time"

	"github.com/fleetops/driver-service/internal/domain/schedule"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/monitoring"
)

// ScheduleFetcher loads a driver's schedules
type ScheduleFetcher interface {
	FindByDriverID(ctx context.Context, driverID int64) ([]schedule.Schedule, error)
}

// Query describes a candidate time window for a driver
type Query struct {
	DriverID  int64
	Start     *time.Time
	End       *time.Time
	ExcludeID *int64 // schedule being edited
}

// Checker finds schedules that overlap a candidate window
type Checker struct {
	schedules ScheduleFetcher
	monitor   *monitoring.NewRelicApp
	logger    *logger.Logger
}

// NewChecker creates a new conflict checker. monitor may be nil.
func NewChecker(schedules ScheduleFetcher, monitor *monitoring.NewRelicApp, logger *logger.Logger) *Checker {
	return &Checker{
		schedules: schedules,
		monitor:   monitor,
		logger:    logger,
	}
}

// FindConflicts returns the driver's schedules overlapping the query window,
// in the order storage returned them. A query without driver, start or end
// yields an empty result without touching storage.
func (c *Checker) FindConflicts(ctx context.Context, q Query) ([]schedule.Schedule, error) {
	if q.DriverID == 0 || q.Start == nil || q.End == nil {
		return []schedule.Schedule{}, nil
	}

	startTime := time.Now()

	existing, err := c.schedules.FindByDriverID(ctx, q.DriverID)
	if err != nil {
		return nil, err
	}

	conflicts := Find(existing, *q.Start, *q.End, q.ExcludeID)

	c.logger.Info("Schedule conflict check",
		logger.Int64("driver_id", q.DriverID),
		logger.Int("schedules", len(existing)),
		logger.Int("conflicts", len(conflicts)),
		logger.Duration("duration", time.Since(startTime)),
	)
	if c.monitor.IsEnabled() {
		c.monitor.RecordConflictCheck(q.DriverID, len(conflicts))
	}

	return conflicts, nil
}

// Find filters schedules down to those overlapping [start, end). Windows that
// only touch at a boundary do not overlap. Schedules without a complete window
// and the schedule matching excludeID are skipped. Input order is kept.
func Find(schedules []schedule.Schedule, start, end time.Time, excludeID *int64) []schedule.Schedule {
	conflicts := make([]schedule.Schedule, 0)
	for _, s := range schedules {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if !s.HasWindow() {
			continue
		}
		if start.Before(*s.EndTime) && end.After(*s.StartTime) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}
