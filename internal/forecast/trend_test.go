package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

func TestTrendCoefficient_TooFewPoints(t *testing.T) {
	months := []ValidMonth{
		{Month: 0, Value: 10},
		{Month: 1, Value: 20},
	}

	require.Equal(t, 0.0, TrendCoefficient(months))
}

func TestTrendCoefficient_RisingSeries(t *testing.T) {
	months := []ValidMonth{
		{Month: 0, Value: 10},
		{Month: 1, Value: 20},
		{Month: 2, Value: 30},
		{Month: 3, Value: 40},
		{Month: 4, Value: 50},
		{Month: 5, Value: 60},
	}

	// slope 10 per month over mean 35
	require.InDelta(t, 10.0/35.0, TrendCoefficient(months), 1e-9)
}

func TestTrendCoefficient_FallingSeries(t *testing.T) {
	months := []ValidMonth{
		{Month: 0, Value: 60},
		{Month: 1, Value: 50},
		{Month: 2, Value: 40},
	}

	require.InDelta(t, -10.0/50.0, TrendCoefficient(months), 1e-9)
}

func TestTrendCoefficient_FlatSeries(t *testing.T) {
	months := []ValidMonth{
		{Month: 2, Value: 7},
		{Month: 5, Value: 7},
		{Month: 9, Value: 7},
	}

	require.Equal(t, 0.0, TrendCoefficient(months))
}

func TestTrendCoefficient_UsesCalendarMonthIndex(t *testing.T) {
	// Same values, but spread over 11 months instead of 2: the wider x range
	// must flatten the slope. Gaps matter.
	compact := []ValidMonth{
		{Month: 0, Value: 10},
		{Month: 1, Value: 20},
		{Month: 2, Value: 30},
	}
	spread := []ValidMonth{
		{Month: 0, Value: 10},
		{Month: 5, Value: 20},
		{Month: 11, Value: 30},
	}

	require.Greater(t, TrendCoefficient(compact), TrendCoefficient(spread))
}

func TestClassifyTrend_Deadband(t *testing.T) {
	dir, mult := ClassifyTrend(0.05)
	require.Equal(t, domain.TrendStable, dir)
	require.Equal(t, 1.0, mult)

	dir, mult = ClassifyTrend(-0.05)
	require.Equal(t, domain.TrendStable, dir)
	require.Equal(t, 1.0, mult)

	dir, mult = ClassifyTrend(0.0)
	require.Equal(t, domain.TrendStable, dir)
	require.Equal(t, 1.0, mult)
}

func TestClassifyTrend_UpWithCap(t *testing.T) {
	dir, mult := ClassifyTrend(0.08)
	require.Equal(t, domain.TrendUp, dir)
	require.InDelta(t, 1.08, mult, 1e-9)

	// boost capped at +15%
	dir, mult = ClassifyTrend(0.40)
	require.Equal(t, domain.TrendUp, dir)
	require.InDelta(t, 1.15, mult, 1e-9)
}

func TestClassifyTrend_DownWithCap(t *testing.T) {
	dir, mult := ClassifyTrend(-0.08)
	require.Equal(t, domain.TrendDown, dir)
	require.InDelta(t, 0.92, mult, 1e-9)

	// cut capped at -15%
	dir, mult = ClassifyTrend(-0.40)
	require.Equal(t, domain.TrendDown, dir)
	require.InDelta(t, 0.85, mult, 1e-9)
}
