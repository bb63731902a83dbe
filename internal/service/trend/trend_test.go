package trend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/pkg/logger"
)

func f64(v float64) *float64 { return &v }

func scored(id int64, score, fuel, onTime *float64) form.Form {
	return form.Form{
		ID:             id,
		DriverID:       7,
		DriverName:     "Jane Doe",
		VehicleNumber:  "KCA 123A",
		Score:          score,
		FuelEfficiency: fuel,
		OnTimeRate:     onTime,
	}
}

type fakeFetcher struct {
	forms []form.Form
	err   error
	calls int
	// afterRead runs once, after the forms were read and before they are
	// returned.
	afterRead func()
}

func (f *fakeFetcher) FindByDriverID(_ context.Context, _ int64) ([]form.Form, error) {
	f.calls++
	forms := f.forms
	if hook := f.afterRead; hook != nil {
		f.afterRead = nil
		hook()
	}
	return forms, f.err
}

// TestCompute_Empty tests the no-forms case
func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, 0)

	assert.Equal(t, Empty(), got)
	assert.NotNil(t, got.FormIDs)
	assert.NotNil(t, got.Scores)
	assert.Equal(t, 0, got.TotalForms)
	assert.Equal(t, Averages{}, got.Averages)
}

// TestCompute_SortsByID tests chronological ordering by form id
func TestCompute_SortsByID(t *testing.T) {
	forms := []form.Form{
		scored(3, f64(70), nil, nil),
		scored(1, f64(90), nil, nil),
		scored(2, f64(80), nil, nil),
	}

	got := Compute(forms, 0)

	assert.Equal(t, []int64{1, 2, 3}, got.FormIDs)
	assert.Equal(t, []float64{90, 80, 70}, got.Scores)
	assert.Equal(t, int64(3), forms[0].ID, "Input should not be reordered")
}

// TestCompute_Limit tests windowing to the most recent forms
func TestCompute_Limit(t *testing.T) {
	forms := []form.Form{
		scored(1, f64(10), nil, nil),
		scored(2, f64(20), nil, nil),
		scored(3, f64(30), nil, nil),
		scored(4, f64(40), nil, nil),
		scored(5, f64(50), nil, nil),
	}

	tests := []struct {
		name     string
		limit    int
		expected []int64
	}{
		{"Last two", 2, []int64{4, 5}},
		{"Zero means all", 0, []int64{1, 2, 3, 4, 5}},
		{"Negative means all", -3, []int64{1, 2, 3, 4, 5}},
		{"Equal to count", 5, []int64{1, 2, 3, 4, 5}},
		{"Larger than count", 9, []int64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(forms, tt.limit)
			assert.Equal(t, tt.expected, got.FormIDs)
			assert.Equal(t, len(tt.expected), got.TotalForms)
		})
	}

	assert.Equal(t, 45.0, Compute(forms, 2).Averages.Score)
}

// TestCompute_MissingMetricsCountAsZero tests nil metric substitution
func TestCompute_MissingMetricsCountAsZero(t *testing.T) {
	forms := []form.Form{
		scored(1, f64(80), f64(12.5), f64(0.9)),
		scored(2, f64(90), nil, f64(0.95)),
		scored(3, nil, f64(11), nil),
	}

	got := Compute(forms, 0)

	assert.Equal(t, []float64{80, 90, 0}, got.Scores)
	assert.Equal(t, []float64{12.5, 0, 11}, got.FuelEfficiencies)
	assert.Equal(t, 56.67, got.Averages.Score)
	assert.Equal(t, 7.83, got.Averages.FuelEfficiency)
	assert.Equal(t, 0.62, got.Averages.OnTimeRate)
}

// TestCompute_SeriesAreParallel tests that all series share one length
func TestCompute_SeriesAreParallel(t *testing.T) {
	forms := []form.Form{scored(1, nil, nil, nil), scored(2, f64(1), nil, nil)}
	got := Compute(forms, 0)

	assert.Len(t, got.Scores, len(got.FormIDs))
	assert.Len(t, got.FuelEfficiencies, len(got.FormIDs))
	assert.Len(t, got.OnTimeRates, len(got.FormIDs))
}

// TestRoundToTwoDecimals tests half-up rounding
func TestRoundToTwoDecimals(t *testing.T) {
	assert.Equal(t, 56.67, roundToTwoDecimals(170.0/3))
	assert.Equal(t, 0.13, roundToTwoDecimals(0.125))
	assert.Equal(t, 12.0, roundToTwoDecimals(12))
}

func newCachedAggregator(t *testing.T, fetcher FormFetcher) (*miniredis.Miniredis, *Aggregator) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewAggregator(fetcher, client, time.Minute, nil, logger.NewNop())
}

// TestAggregator_ZeroDriver tests the absent driver case
func TestAggregator_ZeroDriver(t *testing.T) {
	fetcher := &fakeFetcher{}
	agg := NewAggregator(fetcher, nil, 0, nil, logger.NewNop())

	got, err := agg.ComputeTrends(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, Empty(), got)
	assert.Equal(t, 0, fetcher.calls)
}

// TestAggregator_WithoutCache tests computing directly from storage
func TestAggregator_WithoutCache(t *testing.T) {
	fetcher := &fakeFetcher{forms: []form.Form{scored(1, f64(80), nil, nil)}}
	agg := NewAggregator(fetcher, nil, 0, nil, logger.NewNop())

	for i := 0; i < 2; i++ {
		got, err := agg.ComputeTrends(context.Background(), 7, 0)
		require.NoError(t, err)
		assert.Equal(t, 80.0, got.Averages.Score)
	}
	assert.Equal(t, 2, fetcher.calls)

	agg.Invalidate(context.Background(), 7)
}

// TestAggregator_CacheHitAndInvalidate tests the read-through cache
func TestAggregator_CacheHitAndInvalidate(t *testing.T) {
	fetcher := &fakeFetcher{forms: []form.Form{scored(1, f64(80), nil, nil)}}
	mr, agg := newCachedAggregator(t, fetcher)
	ctx := context.Background()

	first, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	assert.True(t, mr.Exists("trends:driver:7"))
	assert.Greater(t, mr.TTL("trends:driver:7"), time.Duration(0))

	fetcher.forms = append(fetcher.forms, scored(2, f64(100), nil, nil))

	cached, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, first, cached, "Second call should be served from cache")
	assert.Equal(t, 1, fetcher.calls)

	agg.Invalidate(ctx, 7)
	assert.False(t, mr.Exists("trends:driver:7"))

	fresh, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 90.0, fresh.Averages.Score)
	assert.Equal(t, 2, fetcher.calls)
}

// TestAggregator_CacheKeyedByLimit tests that limits are cached separately
func TestAggregator_CacheKeyedByLimit(t *testing.T) {
	fetcher := &fakeFetcher{forms: []form.Form{
		scored(1, f64(10), nil, nil),
		scored(2, f64(20), nil, nil),
	}}
	mr, agg := newCachedAggregator(t, fetcher)
	ctx := context.Background()

	all, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	last, err := agg.ComputeTrends(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, all.TotalForms)
	assert.Equal(t, 1, last.TotalForms)
	keys, err := mr.HKeys("trends:driver:7")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"0", "1"}, keys)
}

// TestAggregator_WriteDuringComputeIsNotCached tests that an invalidation
// racing a computation wins
func TestAggregator_WriteDuringComputeIsNotCached(t *testing.T) {
	fetcher := &fakeFetcher{forms: []form.Form{scored(1, f64(80), nil, nil)}}
	mr, agg := newCachedAggregator(t, fetcher)
	ctx := context.Background()

	fetcher.afterRead = func() {
		fetcher.forms = append(fetcher.forms, scored(2, f64(100), nil, nil))
		agg.Invalidate(ctx, 7)
	}

	stale, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, stale.TotalForms)
	assert.False(t, mr.Exists("trends:driver:7"), "A trend read before the write must not be cached")

	fresh, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalForms)
	assert.Equal(t, 90.0, fresh.Averages.Score)
	assert.True(t, mr.Exists("trends:driver:7"))

	cached, err := agg.ComputeTrends(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)
	assert.Equal(t, 2, fetcher.calls)
}

// TestAggregator_CacheFailureFallsBack tests computing when Redis is down
func TestAggregator_CacheFailureFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{forms: []form.Form{scored(1, f64(80), nil, nil)}}
	mr, agg := newCachedAggregator(t, fetcher)
	mr.Close()

	got, err := agg.ComputeTrends(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Averages.Score)
}

// TestAggregator_StorageError tests error propagation
func TestAggregator_StorageError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	agg := NewAggregator(fetcher, nil, 0, nil, logger.NewNop())

	_, err := agg.ComputeTrends(context.Background(), 7, 0)
	assert.Error(t, err)
}

// BenchmarkCompute benchmarks trend computation
func BenchmarkCompute(b *testing.B) {
	forms := make([]form.Form, 0, 100)
	for i := 100; i > 0; i-- {
		forms = append(forms, scored(int64(i), f64(float64(i)), f64(10), f64(0.9)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(forms, 10)
	}
}
