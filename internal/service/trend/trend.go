package trend

import (
	"cmp"
	"math"
	"slices"

	"github.com/fleetops/driver-service/internal/domain/form"
)

// Averages holds per-metric means rounded to two decimals
type Averages struct {
	Score          float64 `json:"score"`
	FuelEfficiency float64 `json:"fuel_efficiency"`
	OnTimeRate     float64 `json:"on_time_rate"`
}

// Trend is a driver's metric series, oldest form first
type Trend struct {
	FormIDs          []int64   `json:"form_ids"`
	Scores           []float64 `json:"scores"`
	FuelEfficiencies []float64 `json:"fuel_efficiencies"`
	OnTimeRates      []float64 `json:"on_time_rates"`
	Averages         Averages  `json:"averages"`
	TotalForms       int       `json:"total_forms"`
}

// Empty returns a trend with empty, non-nil series
func Empty() Trend {
	return Trend{
		FormIDs:          []int64{},
		Scores:           []float64{},
		FuelEfficiencies: []float64{},
		OnTimeRates:      []float64{},
	}
}

// Compute builds a trend from forms ordered by id. A positive limit smaller
// than the number of forms keeps only the most recent limit forms. Missing
// metrics count as 0.
func Compute(forms []form.Form, limit int) Trend {
	sorted := slices.Clone(forms)
	slices.SortStableFunc(sorted, func(a, b form.Form) int {
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[len(sorted)-limit:]
	}

	t := Trend{
		FormIDs:          make([]int64, 0, len(sorted)),
		Scores:           make([]float64, 0, len(sorted)),
		FuelEfficiencies: make([]float64, 0, len(sorted)),
		OnTimeRates:      make([]float64, 0, len(sorted)),
		TotalForms:       len(sorted),
	}
	for _, f := range sorted {
		t.FormIDs = append(t.FormIDs, f.ID)
		t.Scores = append(t.Scores, valueOrZero(f.Score))
		t.FuelEfficiencies = append(t.FuelEfficiencies, valueOrZero(f.FuelEfficiency))
		t.OnTimeRates = append(t.OnTimeRates, valueOrZero(f.OnTimeRate))
	}

	t.Averages = Averages{
		Score:          roundToTwoDecimals(mean(t.Scores)),
		FuelEfficiency: roundToTwoDecimals(mean(t.FuelEfficiencies)),
		OnTimeRate:     roundToTwoDecimals(mean(t.OnTimeRates)),
	}
	return t
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// roundToTwoDecimals rounds half away from zero for non-negative input
func roundToTwoDecimals(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
