// Package forecast contains the demand-forecasting engine behind the
// production planning and raw-material reorder routes: series cleaning,
// outlier clamping, recency-weighted averaging, trend estimation, and the
// seasonal holiday factor. Everything here is a pure function of its inputs;
// loading and persistence live in the repository and service layers.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// ValidMonth is one usable observation taken from a monthly series.
type ValidMonth struct {
	Month int     // 0 = January .. 11 = December
	Value float64 // strictly positive at extraction time
}

// ExtractValidMonths keeps only months with a present, finite value strictly
// greater than zero, in calendar order. Zero and negative entries count as
// invalid data, not as real observations.
func ExtractValidMonths(series domain.MonthlySeries) []ValidMonth {
	months := make([]ValidMonth, 0, 12)
	for i, v := range series.Values {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			continue
		}
		months = append(months, ValidMonth{Month: i, Value: *v})
	}

	return months
}

// ClampStrategy bounds outliers in a cleaned value sequence. Implementations
// preserve length and order; with too few values for their rank method they
// return the input unchanged. The two strategies use different rank methods
// and are not numerically interchangeable.
type ClampStrategy interface {
	Name() string
	Clamp(values []float64) []float64
}

// PercentileClamp clamps every value into the interpolated [Low, High]
// percentile range of the sequence. Used by the production pipeline with the
// P10/P90 defaults.
type PercentileClamp struct {
	Low  float64
	High float64
}

func (PercentileClamp) Name() string { return "percentile" }

func (c PercentileClamp) Clamp(values []float64) []float64 {
	if len(values) < 1 {
		return values
	}

	low, high := c.Low, c.High
	if low == 0 && high == 0 {
		low, high = 0.10, 0.90
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	lower := interpolatedPercentile(sorted, low)
	upper := interpolatedPercentile(sorted, high)

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = clampValue(v, lower, upper)
	}

	return out
}

// interpolatedPercentile computes the percentile at index (n-1)*p with linear
// interpolation between the surrounding ranks.
func interpolatedPercentile(sorted []float64, p float64) float64 {
	idx := float64(len(sorted)-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}

	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// IQRClamp clamps into [Q1 - m*IQR, Q3 + m*IQR] using nearest-rank quartiles
// at floor(n*0.25) and floor(n*0.75). Used by the raw-material pipeline.
// Fewer than four values are too few for quartile estimation and pass
// through unchanged. The lower bound is not floored at zero: for skewed
// positive data it can go negative, which downstream floors absorb.
type IQRClamp struct {
	Multiplier float64
}

func (IQRClamp) Name() string { return "iqr" }

func (c IQRClamp) Clamp(values []float64) []float64 {
	if len(values) < 4 {
		return values
	}

	m := c.Multiplier
	if m == 0 {
		m = 1.5
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	q1 := sorted[int(float64(n)*0.25)]
	q3 := sorted[int(float64(n)*0.75)]
	iqr := q3 - q1

	lower := q1 - m*iqr
	upper := q3 + m*iqr

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = clampValue(v, lower, upper)
	}

	return out
}

func clampValue(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}

	return v
}

// ClampMonths applies a clamp strategy to the values of a cleaned series,
// preserving the month association of each observation.
func ClampMonths(months []ValidMonth, strategy ClampStrategy) []ValidMonth {
	if len(months) == 0 {
		return months
	}

	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = m.Value
	}

	clamped := strategy.Clamp(values)

	out := make([]ValidMonth, len(months))
	for i, m := range months {
		out[i] = ValidMonth{Month: m.Month, Value: clamped[i]}
	}

	return out
}

const (
	recencyWeight = 2.0
	baseWeight    = 1.0
)

// RecencyWindow decides which cleaned observations carry the doubled recency
// weight in WeightedRecencyAverage.
type RecencyWindow interface {
	IsRecent(pos, total, month int) bool
}

// LastEntriesWindow marks the last N observations by position in the
// chronological sequence. The production pipeline uses N=3.
type LastEntriesWindow struct {
	N int
}

func (w LastEntriesWindow) IsRecent(pos, total, _ int) bool {
	return pos >= total-w.N
}

// CalendarWindow marks observations whose calendar month is one of the Span
// months up to and including the month of Now, wrapping across the year
// boundary. The raw-material pipeline uses Span=3, so a December run weights
// October through December.
type CalendarWindow struct {
	Now  time.Time
	Span int
}

func (w CalendarWindow) IsRecent(_, _, month int) bool {
	current := int(w.Now.Month()) - 1
	for i := 0; i < w.Span; i++ {
		if (current-i+12)%12 == month {
			return true
		}
	}

	return false
}

// WeightedRecencyAverage computes the recency-weighted mean of a cleaned,
// chronologically ordered series. Observations inside the window weigh 2.0,
// all others 1.0, so the weight total is positive whenever at least one
// observation exists. Must not be called with an empty slice; callers take
// the fallback branch instead.
func WeightedRecencyAverage(months []ValidMonth, window RecencyWindow) float64 {
	var sum, weights float64
	for i, m := range months {
		w := baseWeight
		if window.IsRecent(i, len(months), m.Month) {
			w = recencyWeight
		}
		sum += m.Value * w
		weights += w
	}

	return sum / weights
}
