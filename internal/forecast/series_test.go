package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func seriesWith(values map[int]float64) domain.MonthlySeries {
	s := domain.MonthlySeries{SKU: "test", Year: 2024}
	for month, v := range values {
		s.Values[month] = fptr(v)
	}
	return s
}

func TestExtractValidMonths_FiltersInvalidValues(t *testing.T) {
	s := domain.MonthlySeries{SKU: "test", Year: 2024}
	s.Values[0] = fptr(10)
	s.Values[1] = fptr(0)   // zero is invalid, not a real observation
	s.Values[2] = fptr(-5)  // negative discarded
	s.Values[3] = nil       // absent
	s.Values[4] = fptr(math.NaN())
	s.Values[11] = fptr(3.5)

	months := ExtractValidMonths(s)

	require.Equal(t, []ValidMonth{
		{Month: 0, Value: 10},
		{Month: 11, Value: 3.5},
	}, months)
}

func TestExtractValidMonths_EmptySeries(t *testing.T) {
	months := ExtractValidMonths(domain.MonthlySeries{})
	require.Empty(t, months)
}

func TestPercentileClamp_InterpolatesBounds(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	clamped := PercentileClamp{Low: 0.10, High: 0.90}.Clamp(values)

	// P10 = 1 + 0.9*(2-1) = 1.9, P90 = 9 + 0.1*(10-9) = 9.1
	require.Len(t, clamped, len(values))
	require.InDelta(t, 1.9, clamped[0], 1e-9)
	require.InDelta(t, 9.1, clamped[9], 1e-9)
	// interior values untouched
	require.Equal(t, 5.0, clamped[4])
}

func TestPercentileClamp_SingleValue(t *testing.T) {
	clamped := PercentileClamp{Low: 0.10, High: 0.90}.Clamp([]float64{42})
	require.Equal(t, []float64{42}, clamped)
}

func TestPercentileClamp_PreservesOrder(t *testing.T) {
	values := []float64{100, 1, 50, 2, 60}

	clamped := PercentileClamp{Low: 0.10, High: 0.90}.Clamp(values)

	require.Len(t, clamped, len(values))
	// the extreme inputs stay in place, only their magnitude is bounded
	require.Less(t, clamped[0], 100.0)
	require.Greater(t, clamped[1], 1.0)
	require.Equal(t, 50.0, clamped[2])
}

func TestIQRClamp_TooFewValuesUnchanged(t *testing.T) {
	values := []float64{5, 500, 1}
	clamped := IQRClamp{Multiplier: 1.5}.Clamp(values)
	require.Equal(t, values, clamped)
}

func TestIQRClamp_BoundsOutliers(t *testing.T) {
	// sorted: [10 10 11 11 12 12 13 100], Q1 = idx 2 = 11, Q3 = idx 6 = 13
	// IQR = 2, bounds [8, 16]
	values := []float64{10, 12, 11, 13, 12, 11, 10, 100}

	clamped := IQRClamp{Multiplier: 1.5}.Clamp(values)

	require.Len(t, clamped, len(values))
	require.Equal(t, 16.0, clamped[7])
	for i := 0; i < 7; i++ {
		require.Equal(t, values[i], clamped[i])
	}
}

func TestClampMonths_KeepsMonthAssociation(t *testing.T) {
	months := []ValidMonth{
		{Month: 1, Value: 10},
		{Month: 4, Value: 12},
		{Month: 5, Value: 11},
		{Month: 6, Value: 13},
		{Month: 8, Value: 12},
		{Month: 9, Value: 11},
		{Month: 10, Value: 10},
		{Month: 11, Value: 100},
	}

	clamped := ClampMonths(months, IQRClamp{Multiplier: 1.5})

	require.Len(t, clamped, len(months))
	for i := range months {
		require.Equal(t, months[i].Month, clamped[i].Month)
	}
	require.Equal(t, 16.0, clamped[7].Value)
}

func TestWeightedRecencyAverage_LastEntriesWindow(t *testing.T) {
	months := []ValidMonth{
		{Month: 0, Value: 1},
		{Month: 1, Value: 2},
		{Month: 2, Value: 3},
		{Month: 3, Value: 4},
	}

	avg := WeightedRecencyAverage(months, LastEntriesWindow{N: 3})

	// weights 1,2,2,2 -> (1 + 4 + 6 + 8) / 7
	require.InDelta(t, 19.0/7.0, avg, 1e-9)
}

func TestWeightedRecencyAverage_FewerEntriesThanWindow(t *testing.T) {
	months := []ValidMonth{
		{Month: 3, Value: 6},
		{Month: 7, Value: 12},
	}

	avg := WeightedRecencyAverage(months, LastEntriesWindow{N: 3})

	// both recent, uniform weight 2
	require.InDelta(t, 9.0, avg, 1e-9)
}

func TestWeightedRecencyAverage_CalendarWindow(t *testing.T) {
	// April run: recent calendar months are Feb, Mar, Apr.
	now := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)
	months := []ValidMonth{
		{Month: 0, Value: 2},
		{Month: 1, Value: 2},
		{Month: 2, Value: 2},
	}

	avg := WeightedRecencyAverage(months, CalendarWindow{Now: now, Span: 3})

	// weights 1,2,2 over identical values still average to 2
	require.InDelta(t, 2.0, avg, 1e-9)
}

func TestWeightedRecencyAverage_CalendarWindowWrapsYearBoundary(t *testing.T) {
	// January run: recent calendar months are Nov, Dec, Jan.
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	months := []ValidMonth{
		{Month: 4, Value: 5},
		{Month: 10, Value: 10},
		{Month: 11, Value: 20},
	}

	avg := WeightedRecencyAverage(months, CalendarWindow{Now: now, Span: 3})

	// weights 1,2,2 -> (5 + 20 + 40) / 5
	require.InDelta(t, 13.0, avg, 1e-9)
}

func TestCalendarWindow_DecemberThirtyFirst(t *testing.T) {
	now := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	w := CalendarWindow{Now: now, Span: 3}

	require.True(t, w.IsRecent(0, 0, 11)) // Dec
	require.True(t, w.IsRecent(0, 0, 10)) // Nov
	require.True(t, w.IsRecent(0, 0, 9))  // Oct
	require.False(t, w.IsRecent(0, 0, 8)) // Sep
	require.False(t, w.IsRecent(0, 0, 0)) // Jan
}
