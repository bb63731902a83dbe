package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/driver-service/internal/domain/schedule"
	"github.com/fleetops/driver-service/pkg/logger"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) *time.Time {
	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

func window(id int64, startHour, endHour int) schedule.Schedule {
	return schedule.Schedule{
		ID:        id,
		DriverID:  7,
		Route:     "R1",
		Status:    "scheduled",
		StartTime: at(startHour, 0),
		EndTime:   at(endHour, 0),
	}
}

func ids(schedules []schedule.Schedule) []int64 {
	out := make([]int64, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, s.ID)
	}
	return out
}

type fakeFetcher struct {
	schedules []schedule.Schedule
	err       error
	calls     int
}

func (f *fakeFetcher) FindByDriverID(_ context.Context, _ int64) ([]schedule.Schedule, error) {
	f.calls++
	return f.schedules, f.err
}

// TestFind_OverlapRules tests the half-open overlap predicate
func TestFind_OverlapRules(t *testing.T) {
	existing := []schedule.Schedule{window(1, 9, 11)}

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected []int64
	}{
		{"Partial overlap at start", at(8, 0), at(10, 0), []int64{1}},
		{"Partial overlap at end", at(10, 0), at(12, 0), []int64{1}},
		{"Candidate inside existing", at(9, 30), at(10, 30), []int64{1}},
		{"Candidate covers existing", at(8, 0), at(12, 0), []int64{1}},
		{"Identical window", at(9, 0), at(11, 0), []int64{1}},
		{"Touches end boundary", at(11, 0), at(12, 0), []int64{}},
		{"Touches start boundary", at(8, 0), at(9, 0), []int64{}},
		{"Entirely before", at(6, 0), at(8, 0), []int64{}},
		{"Entirely after", at(12, 0), at(13, 0), []int64{}},
		{"Inverted window around existing", at(12, 0), at(8, 0), []int64{}},
		{"Inverted window inside existing", at(10, 30), at(9, 30), []int64{1}},
		{"Zero-length inside", at(10, 0), at(10, 0), []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(existing, *tt.start, *tt.end, nil)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

// TestFind_ExcludesScheduleBeingEdited tests the exclusion id
func TestFind_ExcludesScheduleBeingEdited(t *testing.T) {
	existing := []schedule.Schedule{window(1, 9, 11), window(2, 10, 12)}
	exclude := int64(1)

	got := Find(existing, *at(9, 0), *at(11, 0), &exclude)
	assert.Equal(t, []int64{2}, ids(got))
}

// TestFind_SkipsIncompleteWindows tests schedules without start or end
func TestFind_SkipsIncompleteWindows(t *testing.T) {
	noEnd := window(1, 9, 11)
	noEnd.EndTime = nil
	noStart := window(2, 9, 11)
	noStart.StartTime = nil

	got := Find([]schedule.Schedule{noEnd, noStart, window(3, 9, 11)}, *at(9, 0), *at(10, 0), nil)
	assert.Equal(t, []int64{3}, ids(got))
}

// TestFind_PreservesInputOrder tests that results are not re-sorted
func TestFind_PreservesInputOrder(t *testing.T) {
	existing := []schedule.Schedule{window(9, 9, 11), window(3, 8, 10), window(5, 10, 12)}

	got := Find(existing, *at(9, 0), *at(11, 0), nil)
	assert.Equal(t, []int64{9, 3, 5}, ids(got))

	again := Find(got, *at(9, 0), *at(11, 0), nil)
	assert.Equal(t, got, again, "Filtering twice should be idempotent")
}

// TestFind_EmptyInput tests the empty case
func TestFind_EmptyInput(t *testing.T) {
	got := Find(nil, *at(9, 0), *at(10, 0), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestChecker_MissingQueryParts tests that incomplete queries skip storage
func TestChecker_MissingQueryParts(t *testing.T) {
	fetcher := &fakeFetcher{schedules: []schedule.Schedule{window(1, 9, 11)}}
	checker := NewChecker(fetcher, nil, logger.NewNop())

	queries := []Query{
		{DriverID: 0, Start: at(9, 0), End: at(10, 0)},
		{DriverID: 7, Start: nil, End: at(10, 0)},
		{DriverID: 7, Start: at(9, 0), End: nil},
	}

	for _, q := range queries {
		got, err := checker.FindConflicts(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
	assert.Equal(t, 0, fetcher.calls)
}

// TestChecker_FindConflicts tests the fetch and filter path
func TestChecker_FindConflicts(t *testing.T) {
	fetcher := &fakeFetcher{schedules: []schedule.Schedule{window(1, 9, 11), window(2, 13, 15)}}
	checker := NewChecker(fetcher, nil, logger.NewNop())

	got, err := checker.FindConflicts(context.Background(), Query{DriverID: 7, Start: at(10, 0), End: at(14, 0)})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(got))
	assert.Equal(t, 1, fetcher.calls)
}

// TestChecker_StorageError tests error propagation
func TestChecker_StorageError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	checker := NewChecker(fetcher, nil, logger.NewNop())

	_, err := checker.FindConflicts(context.Background(), Query{DriverID: 7, Start: at(9, 0), End: at(10, 0)})
	assert.Error(t, err)
}

// BenchmarkFind benchmarks the overlap filter
func BenchmarkFind(b *testing.B) {
	existing := make([]schedule.Schedule, 0, 24)
	for h := 0; h < 23; h++ {
		existing = append(existing, window(int64(h+1), h, h+1))
	}
	start, end := *at(8, 30), *at(12, 30)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Find(existing, start, end, nil)
	}
}
